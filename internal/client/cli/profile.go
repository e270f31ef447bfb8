package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/senseandsay/internal/client/dashboard"
	"github.com/dmitrijs2005/senseandsay/internal/client/models"
)

func (a *App) Profile(context.Context) error {
	p := a.services.Profiles.Profile()
	fmt.Fprintf(a.out, "Name:              %s\n", p.Name)
	fmt.Fprintf(a.out, "Age:               %s\n", p.Age)
	fmt.Fprintf(a.out, "Preferred mode:    %s\n", p.PreferredMode)
	fmt.Fprintf(a.out, "Favorite sound:    %s\n", p.FavoriteSound)
	fmt.Fprintf(a.out, "Color sensitive:   %t\n", p.ColorSensitive)
	fmt.Fprintf(a.out, "Goals:             %s\n", strings.Join(p.Goals, "; "))
	fmt.Fprintf(a.out, "Daily breaks:      %d\n", p.DailyBreaks)
	fmt.Fprintf(a.out, "Daily comms:       %d\n", p.DailyComms)
	fmt.Fprintf(a.out, "Emergency contact: %s\n", p.EmergencyContact)
	return nil
}

// ask shows the current value and keeps it when the answer is empty.
func (a *App) ask(label, current string) (string, error) {
	v, err := getSimpleText(a.reader, fmt.Sprintf("%s [%s]", label, current), a.out)
	if err != nil || v == "" {
		return current, err
	}
	return v, nil
}

func (a *App) askInt(label string, current int) (int, error) {
	v, err := a.ask(label, strconv.Itoa(current))
	if err != nil {
		return current, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return current, fmt.Errorf("%w: %s must be a number", errUsage, label)
	}
	return n, nil
}

// EditProfile walks through every field; the whole profile is saved at the
// end.
func (a *App) EditProfile(ctx context.Context) error {
	p := a.services.Profiles.Profile()
	var err error

	if p.Name, err = a.ask("Name", p.Name); err != nil {
		return err
	}
	if p.Age, err = a.ask("Age", p.Age); err != nil {
		return err
	}
	if p.PreferredMode, err = a.ask("Preferred mode "+strings.Join(models.Modes, " | "), p.PreferredMode); err != nil {
		return err
	}
	if p.FavoriteSound, err = a.ask("Favorite sound "+strings.Join(models.Sounds, " | "), p.FavoriteSound); err != nil {
		return err
	}

	sensitive, err := a.ask("Color sensitive (y/n)", yesNo(p.ColorSensitive))
	if err != nil {
		return err
	}
	p.ColorSensitive = strings.HasPrefix(strings.ToLower(sensitive), "y")

	goals, err := GetLines(a.reader, fmt.Sprintf("Goals [%s]", strings.Join(p.Goals, "; ")), a.out)
	if err != nil {
		return err
	}
	if len(goals) > 0 {
		p.Goals = goals
	}

	if p.DailyBreaks, err = a.askInt(fmt.Sprintf("Daily breaks (%d-%d)", models.MinDailyBreaks, models.MaxDailyBreaks), p.DailyBreaks); err != nil {
		return err
	}
	if p.DailyComms, err = a.askInt(fmt.Sprintf("Daily communications (%d-%d)", models.MinDailyComms, models.MaxDailyComms), p.DailyComms); err != nil {
		return err
	}
	if p.EmergencyContact, err = a.ask("Emergency contact", p.EmergencyContact); err != nil {
		return err
	}

	if err := a.services.Profiles.Save(ctx, p); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Profile saved.")
	return nil
}

func yesNo(b bool) string {
	if b {
		return "y"
	}
	return "n"
}

func (a *App) Dashboard(context.Context) error {
	s := dashboard.Build(a.services.Profiles.Profile())

	fmt.Fprintf(a.out, "\"%s\"\n\n", s.Quote)
	fmt.Fprintf(a.out, "Welcome back,\n%s\n", s.Greeting)
	if len(s.Goals) > 0 {
		fmt.Fprintln(a.out, "Your goals:")
		for _, g := range s.Goals {
			fmt.Fprintf(a.out, "  - %s\n", g)
		}
	}
	fmt.Fprintf(a.out, "Today: %d breaks, %d communications\n", s.DailyBreaks, s.DailyComms)
	return nil
}
