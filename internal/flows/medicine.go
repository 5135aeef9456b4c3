package flows

import (
	"context"
	"fmt"
	"strings"

	"healthbot/internal/content"
	"healthbot/internal/flow"
	"healthbot/internal/reply"
)

const stateAwaitMedicineName flow.StateID = "await_medicine_name"

// medicineFlow looks a medicine up in the directory. One text state.
func (a *app) medicineFlow() *flow.Flow {
	return &flow.Flow{
		ID: MedicineFlowID,
		Entry: []flow.Transition{
			{Match: flow.Callback(cbFindMedicine), Handler: a.medicineStart},
		},
		States: map[flow.StateID][]flow.Transition{
			stateAwaitMedicineName: {
				{Match: flow.AnyText(), Handler: a.medicineName},
			},
		},
	}
}

func (a *app) medicineStart(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	return &flow.Result{
		Next: stateAwaitMedicineName,
		Reply: reply.Text(req.AccountID, "Which medicine would you like to look up? Send its name:").
			WithActions(backToMenu()),
	}, nil
}

func (a *app) medicineName(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	name := content.Normalize(req.Event.Text)
	if name == "" {
		return &flow.Result{
			Next:  stateAwaitMedicineName,
			Reply: reply.Text(req.AccountID, "Please send the medicine name:"),
		}, nil
	}

	med, found := a.content.FindMedicine(name)
	var text string
	if found {
		text = fmt.Sprintf("Found data for %s:\nActive ingredient: %s\nIndications: %s",
			med.Name, med.Ingredient, med.Indications)
		if len(med.Analogues) > 0 {
			text += "\nAnalogues: " + strings.Join(med.Analogues, ", ")
		}
	} else {
		text = fmt.Sprintf("Unfortunately '%s' was not found in our directory.\nTry another name or check the spelling.", name)
	}

	return &flow.Result{
		Next:  flow.Terminal,
		Reply: mainMenu(req.AccountID, text),
	}, nil
}
