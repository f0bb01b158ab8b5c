package add

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/manifoldco/promptui"

	"tableflip.dev/trip/pkg/app"
	"tableflip.dev/trip/pkg/event"
	"tableflip.dev/trip/pkg/timeutil"
)

// TimeLayout is the layout accepted for start times.
const TimeLayout = "2006-01-02 15:04"

type wizard struct {
	service *app.Service
	in      io.Reader
	out     io.Writer
}

var promptTemplates = &promptui.PromptTemplates{
	Prompt:  "{{ . }}: ",
	Valid:   "{{ . | green }}: ",
	Invalid: "{{ . | red }}: ",
	Success: "{{ . | bold }}: ",
}

// fill asks for every field of req, offering the current values as defaults.
func (w wizard) fill(ctx context.Context, req *app.EventRequest) error {
	destinations, offers, err := w.service.Catalogs(ctx)
	if err != nil {
		return err
	}

	types := event.AllTypes()
	i, err := w.selectOne("Type", typeLabels(types))
	if err != nil {
		return err
	}
	t := types[i]
	req.Type = string(t)

	names := destinations.Names()
	if len(names) > 0 {
		i, err := w.selectOne("Destination", names)
		if err != nil {
			return err
		}
		req.Destination = names[i]
	} else {
		req.Destination, err = w.ask("Destination", req.Destination, func(s string) error {
			if strings.TrimSpace(s) == "" {
				return errors.New("destination is required")
			}
			return nil
		})
		if err != nil {
			return err
		}
	}

	start := req.Start
	if start.IsZero() {
		start = w.service.Clock().Truncate(time.Hour).Add(time.Hour)
	}
	raw, err := w.ask("Start", start.Format(TimeLayout), func(s string) error {
		_, err := time.ParseInLocation(TimeLayout, s, w.service.Location())
		return err
	})
	if err != nil {
		return err
	}
	req.Start, _ = time.ParseInLocation(TimeLayout, raw, w.service.Location())

	raw, err = w.ask("Duration", "1h", func(s string) error {
		_, err := timeutil.ParseSpan(s)
		return err
	})
	if err != nil {
		return err
	}
	span, _ := timeutil.ParseSpan(raw)
	req.End = req.Start.Add(span)

	raw, err = w.ask("Price", strconv.Itoa(req.BasePrice), func(s string) error {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return errors.New("price must be a positive whole number")
		}
		return nil
	})
	if err != nil {
		return err
	}
	req.BasePrice, _ = strconv.Atoi(raw)

	req.Offers = req.Offers[:0]
	for _, o := range offers.For(t) {
		ok, err := w.confirm(fmt.Sprintf("Add %s (+€ %d)", o.Title, o.Price))
		if err != nil {
			return err
		}
		if ok {
			req.Offers = append(req.Offers, o.ID)
		}
	}

	req.Favourite, err = w.confirm("Favourite")
	return err
}

func (w wizard) selectOne(label string, items []string) (int, error) {
	prompt := promptui.Select{
		Label:    label,
		Items:    items,
		Size:     10,
		HideHelp: true,
		Stdin:    w.stdin(),
		Stdout:   w.stdout(),
		Searcher: func(input string, index int) bool {
			return strings.Contains(strings.ToLower(items[index]), strings.ToLower(input))
		},
	}
	i, _, err := prompt.Run()
	return i, err
}

func (w wizard) ask(label, def string, validate promptui.ValidateFunc) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   def,
		Templates: promptTemplates,
		Validate:  validate,
		Stdin:     w.stdin(),
		Stdout:    w.stdout(),
	}
	return prompt.Run()
}

func (w wizard) confirm(label string) (bool, error) {
	prompt := promptui.Prompt{
		Label:     label,
		IsConfirm: true,
		Stdin:     w.stdin(),
		Stdout:    w.stdout(),
	}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (w wizard) stdin() io.ReadCloser {
	if w.in == nil {
		return nil
	}
	return io.NopCloser(w.in)
}

func (w wizard) stdout() io.WriteCloser {
	if w.out == nil {
		return nil
	}
	return nopWriteCloser{w.out}
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

func typeLabels(types []event.Type) []string {
	out := make([]string, 0, len(types))
	for _, t := range types {
		out = append(out, t.Emoji()+"  "+t.Label())
	}
	return out
}
