package agent

import (
	"github.com/etnz/networth/store"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and keep context of your previous questions.

			The user tracks their net worth: dated balances of investments and liabilities.
			They come to understand how their wealth evolves and what they could change.
			Devise a plan of questions to ask to each expert and come up with the best response to the user's request.

			You give insights, never financial advice: say so when the user asks what to buy or sell.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewTrader returns an expert grounded on Google Search, for news about
// markets and financial products.
func NewTrader() *Expert {
	return &Expert{
		Name: "Trader",
		Description: `This is an expert trader,
		very well aware of financial products, institutions and markets.
		Ask the Trader whenever you need recent or grounding information.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in trading, you can search and find about anything related to
			financial institutions, markets, funds, interest rates and inflation.
			You leverage Google Search to ground your assertions in a solid truth.
				`}}},
		},
	}
}

// NewAnalyst returns the expert reading the user's ledger.
func NewAnalyst(st store.Store, currency string) *Expert {
	lib := Tools(st, currency)
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. They read the user's ledger of dated balances
		and compute snapshots, insights, performance metrics, chart series and projections.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are an analyst in charge of the user's net worth ledger.
				You know how to use the Tools to extract relevant figures about the user's wealth.
				You are part of a team of experts, yours is everything about the user's ledger. They might ask
				you questions with approximate language, figure out what they meant.

				Read the documentation topics before explaining a metric.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}
