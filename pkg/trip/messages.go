package trip

import (
	"fmt"

	"tableflip.dev/trip/pkg/event"
)

// Results of persistence calls. They are produced by the tea.Cmd returned
// from Dispatch and consumed by Controller.Update on the UI loop.

type favoriteResultMsg struct {
	action AddToFavorite
	event  *event.Event
	err    error
}

type updateResultMsg struct {
	action Update
	event  *event.Event
	err    error
}

type deleteResultMsg struct {
	action Delete
	err    error
}

type createResultMsg struct {
	action AddNewEvent
	event  *event.Event
	err    error
}

func (m favoriteResultMsg) Describe() string {
	return fmt.Sprintf(`result:"add-to-favorite" id:%q err:%q`, m.action.ID, errString(m.err))
}

func (m updateResultMsg) Describe() string {
	return fmt.Sprintf(`result:"update" id:%q err:%q`, m.action.ID, errString(m.err))
}

func (m deleteResultMsg) Describe() string {
	return fmt.Sprintf(`result:"delete" id:%q err:%q`, m.action.ID, errString(m.err))
}

func (m createResultMsg) Describe() string {
	id := ""
	if m.event != nil {
		id = m.event.ID
	}
	return fmt.Sprintf(`result:"add-new-event" id:%q err:%q`, id, errString(m.err))
}

// Failed reports the persistence error carried by a result message, if any.
func Failed(msg interface{}) error {
	switch m := msg.(type) {
	case favoriteResultMsg:
		return m.err
	case updateResultMsg:
		return m.err
	case deleteResultMsg:
		return m.err
	case createResultMsg:
		return m.err
	}
	return nil
}

// ShakeDoneMsg ends a shake started by EventController.Shake.
type ShakeDoneMsg struct {
	Controller *EventController
	seq        int
}

func (m ShakeDoneMsg) Describe() string {
	return fmt.Sprintf(`shake-done seq:%d`, m.seq)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
