package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-swagform/pkg/content"
	"github.com/goliatone/go-swagform/pkg/form"
	"github.com/goliatone/go-swagform/pkg/validate"
)

var errAborted = errors.New("fill aborted")

// fillAndSubmit walks the declared fields in order, prompting for each one,
// then submits the form and reports the outcome.
func fillAndSubmit(ctx context.Context, logger *slog.Logger, doc *content.FormDocument) error {
	ctrl := form.New(doc,
		form.WithLogger(logger),
		form.WithFocuser(terminalFocuser{logger: logger}),
	)

	for _, field := range doc.Fields {
		switch f := field.(type) {
		case content.TextField:
			value, err := askText(f)
			if err != nil {
				return err
			}
			ctrl.Input(f.ID, value)
			ctrl.Blur(f.ID)
		case content.CheckboxField:
			checked, err := askCheckbox(f)
			if err != nil {
				return err
			}
			if checked {
				ctrl.Input(f.ID, form.CheckedValue)
			}
			ctrl.Blur(f.ID)
		}
	}

	if err := <-ctrl.Submit(ctx); err != nil {
		return err
	}
	fmt.Println(doc.SubmitLabels.Submitted)
	return nil
}

func askText(field content.TextField) (string, error) {
	prompt := &survey.Input{
		Message: field.Title,
		Help:    field.Description,
	}
	rule := validate.RulesFor(field)

	var out string
	err := survey.AskOne(prompt, &out, survey.WithValidator(func(ans interface{}) error {
		value, _ := ans.(string)
		if ferr := rule(value); ferr.Failed() {
			return errors.New(ferr.Description)
		}
		return nil
	}))
	if err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func askCheckbox(field content.CheckboxField) (bool, error) {
	prompt := &survey.Confirm{Message: field.Description}

	var out bool
	err := survey.AskOne(prompt, &out, survey.WithValidator(func(ans interface{}) error {
		if checked, ok := ans.(bool); ok && !checked && field.RequiredMessage != "" {
			return errors.New(field.RequiredMessage)
		}
		return nil
	}))
	if err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return errAborted
	}
	return err
}

// terminalFocuser receives the initial focus request. There is nothing to
// focus in a sequential prompt flow, so it only records the target.
type terminalFocuser struct {
	logger *slog.Logger
}

func (f terminalFocuser) Focus(id string) error {
	f.logger.Debug("focus requested", "field", id)
	return nil
}
