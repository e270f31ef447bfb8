package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/senseandsay/internal/client/models"
	"github.com/dmitrijs2005/senseandsay/internal/client/services"
)

func (a *App) List(ctx context.Context) error {
	list := a.services.Phrases.Phrases()
	if len(list) == 0 {
		fmt.Fprintln(a.out, "No phrases yet. Use 'add <text>' to create one.")
		return nil
	}

	big := a.state.Profile().EnlargeCards()
	for i, p := range list {
		text := p.Text
		if big {
			text = strings.ToUpper(text)
		}
		icon := ""
		if p.IconName != "" {
			icon = " [" + p.IconName + "]"
		}
		fmt.Fprintf(a.out, "%3d. %s%s (color %d)\n", i+1, text, icon, p.PaletteIndex())
	}
	return nil
}

func (a *App) Add(ctx context.Context, args []string) error {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		var err error
		if text, err = getSimpleText(a.reader, "New phrase", a.out); err != nil {
			return err
		}
	}

	res, p, _ := a.services.Phrases.AddPhrase(ctx, text)
	switch res {
	case services.AddBlank:
		fmt.Fprintln(a.out, "Nothing to add.")
	case services.AddDuplicate:
		fmt.Fprintln(a.out, "That phrase is already on your board.")
	case services.Added:
		fmt.Fprintf(a.out, "Added %q.\n", p.Text)
	}
	return nil
}

// phraseAt resolves a 1-based position from the last listing.
func (a *App) phraseAt(args []string) (models.Phrase, error) {
	if len(args) != 1 {
		return models.Phrase{}, fmt.Errorf("%w: give the phrase number from 'list'", errUsage)
	}
	n, err := strconv.Atoi(args[0])
	list := a.services.Phrases.Phrases()
	if err != nil || n < 1 || n > len(list) {
		return models.Phrase{}, fmt.Errorf("%w: no phrase number %s", errUsage, args[0])
	}
	return list[n-1], nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	p, err := a.phraseAt(args)
	if err != nil {
		return err
	}
	a.services.Phrases.DeletePhrase(ctx, p)
	fmt.Fprintf(a.out, "Deleted %q.\n", p.Text)
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	list := a.services.Phrases.Reconcile(ctx)
	fmt.Fprintf(a.out, "%d phrases on your board.\n", len(list))
	return nil
}

func (a *App) Tap(ctx context.Context, args []string) error {
	p, err := a.phraseAt(args)
	if err != nil {
		return err
	}
	if err := a.board.Tap(ctx, p, a.state.Profile().PreferredMode); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Sentence: %s\n", a.board.Sentence())
	return nil
}

func (a *App) Speak(ctx context.Context) error {
	if a.state.Profile().PreferredMode != models.ModeTextToSpeech {
		fmt.Fprintf(a.out, "Show this: %s\n", a.board.Sentence())
		return nil
	}
	return a.board.Speak(ctx, models.ModeTextToSpeech)
}

func (a *App) Clear(context.Context) error {
	a.board.Clear()
	fmt.Fprintln(a.out, "Sentence cleared.")
	return nil
}
