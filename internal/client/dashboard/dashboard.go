// Package dashboard assembles the home screen summary.
package dashboard

import (
	"github.com/dmitrijs2005/senseandsay/internal/client/models"
	"github.com/dmitrijs2005/senseandsay/internal/common"
)

var Quotes = []string{
	"You are capable of amazing things.",
	"Progress, not perfection.",
	"Small steps every day lead to big change.",
	"Believe you can, and you're halfway there.",
	"Focus on what you can do, not what you can't.",
}

type Summary struct {
	Quote       string
	Greeting    string
	Goals       []string
	DailyBreaks int
	DailyComms  int
}

// Build picks a random quote and greets the user by name.
func Build(p models.Profile) Summary {
	return build(p, common.RandIntn)
}

func build(p models.Profile, pick func(n int) int) Summary {
	greeting := p.Name
	if greeting == "" {
		greeting = "Welcome!"
	}
	return Summary{
		Quote:       Quotes[pick(len(Quotes))],
		Greeting:    greeting,
		Goals:       p.Goals,
		DailyBreaks: p.DailyBreaks,
		DailyComms:  p.DailyComms,
	}
}
