package flows

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"healthbot/internal/content"
	"healthbot/internal/flow"
	"healthbot/internal/reply"
	"healthbot/internal/store"
)

const (
	stateDiaryMenu     flow.StateID = "diary_menu"
	stateAwaitMood     flow.StateID = "await_mood"
	stateAwaitSymptoms flow.StateID = "await_symptoms"
	stateAwaitNotes    flow.StateID = "await_notes"

	scratchMood     = "mood"
	scratchSymptoms = "symptoms"
)

// moodLabels is the fixed ordered mood scale; mood_1 is the best.
var moodLabels = [5]string{"Excellent", "Good", "Okay", "Bad", "Terrible"}

const diaryViewLimit = 5

// diaryFlow: MENU branches into adding an entry (mood, symptoms, notes)
// or viewing recent entries; viewing returns to MENU.
func (a *app) diaryFlow() *flow.Flow {
	return &flow.Flow{
		ID: DiaryFlowID,
		Entry: []flow.Transition{
			{Match: flow.Callback(cbWellbeingDiary), Handler: a.diaryStart},
		},
		States: map[flow.StateID][]flow.Transition{
			stateDiaryMenu: {
				{Match: flow.Callback(cbDiaryAdd), Handler: a.diaryAdd},
				{Match: flow.Callback(cbDiaryView), Handler: a.diaryView},
			},
			stateAwaitMood: {
				{Match: flow.CallbackPrefix(moodPrefix), Handler: a.diaryMood},
			},
			stateAwaitSymptoms: {
				{Match: flow.AnyText(), Handler: a.diarySymptoms},
			},
			stateAwaitNotes: {
				{Match: flow.AnyText(), Handler: a.diaryNotes},
			},
		},
	}
}

func (a *app) diaryStart(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	return &flow.Result{
		Next:  stateDiaryMenu,
		Reply: diaryMenu(req.AccountID, "Welcome to the wellbeing diary! What would you like to do?"),
	}, nil
}

func moodActions() []reply.Action {
	actions := make([]reply.Action, 0, len(moodLabels)+1)
	for i, label := range moodLabels {
		actions = append(actions, reply.Action{
			Label: label,
			Event: fmt.Sprintf("%s%d", moodPrefix, i+1),
		})
	}
	return append(actions, backToMenu())
}

func (a *app) diaryAdd(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	return &flow.Result{
		Next: stateAwaitMood,
		Reply: reply.Text(req.AccountID, "How are you feeling today? Pick a mood:").
			WithActions(moodActions()...),
	}, nil
}

func (a *app) diaryMood(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	idx, err := strconv.Atoi(strings.TrimPrefix(req.Event.Callback, moodPrefix))
	if err != nil || idx < 1 || idx > len(moodLabels) {
		return &flow.Result{
			Next: stateAwaitMood,
			Reply: reply.Text(req.AccountID, "Please pick a mood from the list:").
				WithActions(moodActions()...),
		}, nil
	}

	mood := moodLabels[idx-1]
	req.Scratch[scratchMood] = mood
	return &flow.Result{
		Next: stateAwaitSymptoms,
		Reply: reply.Textf(req.AccountID,
			"Mood: %s.\nNow describe any symptoms you are experiencing (or send 'no' if none):", mood).
			WithActions(backToMenu()),
	}, nil
}

func (a *app) diarySymptoms(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	req.Scratch[scratchSymptoms] = noneToEmpty(content.Normalize(req.Event.Text))
	return &flow.Result{
		Next: stateAwaitNotes,
		Reply: reply.Text(req.AccountID,
			"Any additional notes or comments you would like to add? (Send 'no' if none.)").
			WithActions(backToMenu()),
	}, nil
}

func (a *app) diaryNotes(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	notes := noneToEmpty(content.Normalize(req.Event.Text))

	_, omitted, err := a.store.AddDiaryEntry(ctx, store.DiaryEntry{
		AccountID: req.AccountID,
		Mood:      req.Scratch[scratchMood],
		Symptoms:  req.Scratch[scratchSymptoms],
		Notes:     notes,
	}, store.OptionalNotes)
	if err != nil {
		return nil, err
	}

	text := "Entry added to your wellbeing diary!"
	if len(omitted) > 0 {
		text += fmt.Sprintf("\n(Heads up: %s could not be stored on this installation.)",
			strings.Join(omitted, ", "))
	}

	return &flow.Result{
		Next:  flow.Terminal,
		Reply: mainMenu(req.AccountID, text+"\n\nAnything else?"),
	}, nil
}

func (a *app) diaryView(ctx context.Context, req *flow.Request) (*flow.Result, error) {
	entries, err := a.store.ListDiaryEntries(ctx, req.AccountID, diaryViewLimit)
	if err != nil {
		return nil, err
	}

	if len(entries) == 0 {
		return &flow.Result{
			Next:  stateDiaryMenu,
			Reply: diaryMenu(req.AccountID, "Your diary is empty so far. Add your first entry!"),
		}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your last %d entries (newest first):\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&b, "\n%s - %s", e.CreatedAt.Format("2006-01-02 15:04"), e.Mood)
		if e.Symptoms != "" {
			fmt.Fprintf(&b, "\n  Symptoms: %s", e.Symptoms)
		}
		if e.Notes != "" {
			fmt.Fprintf(&b, "\n  Notes: %s", e.Notes)
		}
		b.WriteString("\n")
	}

	return &flow.Result{
		Next:  stateDiaryMenu,
		Reply: diaryMenu(req.AccountID, b.String()),
	}, nil
}

// noneToEmpty maps the "nothing to add" answers to an empty field.
func noneToEmpty(s string) string {
	switch strings.ToLower(s) {
	case "no", "none", "-":
		return ""
	}
	return s
}
