package cmd

import (
	"flag"

	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// flagPredictors predicts flag values that are not free text.
var flagPredictors = map[string]complete.Predictor{
	"kind":        predict.Set{"returns", "value", "allocation"},
	"view":        predict.Set{"cumulative", "period"},
	"mode":        predict.Set{"percentage", "absolute"},
	"granularity": predict.Set{"daily", "weekly", "monthly", "quarterly", "yearly"},
	"o":           predict.Files("*"),
}

// Completion describes the nw command line for shell completion.
func Completion() *complete.Command {
	root := &complete.Command{
		Sub: map[string]*complete.Command{},
		Flags: map[string]complete.Predictor{
			"ledger":   predict.Or(predict.Files("*.jsonl"), predict.Files("*.db"), predict.Files("*.sqlite")),
			"currency": predict.Set{"USD", "EUR", "GBP", "JPY", "CHF"},
			"v":        predict.Nothing,
		},
	}
	for _, c := range Commands() {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: map[string]complete.Predictor{}}
		fs.VisitAll(func(f *flag.Flag) {
			if p, ok := flagPredictors[f.Name]; ok {
				sub.Flags[f.Name] = p
				return
			}
			if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
				sub.Flags[f.Name] = predict.Nothing
				return
			}
			sub.Flags[f.Name] = predict.Something
		})
		switch c.Name() {
		case "import":
			sub.Args = predict.Files("*.csv")
		case "topic":
			sub.Args = predict.Set(topicNames())
		}
		root.Sub[c.Name()] = sub
	}
	return root
}
