package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/formkit/pkg/schema"
)

var errAborted = errors.New("prompt aborted")

type inputConfig struct {
	Message string
	Default string
	Help    string
}

type confirmConfig struct {
	Message string
	Default bool
	Help    string
}

// promptDriver asks single questions. Tests replace the survey driver with a
// scripted one.
type promptDriver interface {
	Input(ctx context.Context, cfg inputConfig) (string, error)
	Password(ctx context.Context, cfg inputConfig) (string, error)
	Confirm(ctx context.Context, cfg confirmConfig) (bool, error)
}

func newPromptCmd(a *app) *cobra.Command {
	var (
		src     sources
		name    string
		retries int
	)

	cmd := &cobra.Command{
		Use:   "prompt",
		Short: "Fill a schema interactively",
		Long: `Asks for every field of the schema, processes the answers and asks again
for the fields that failed, up to --retries times.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := src.load(cmd.Context(), a)
			if err != nil {
				return err
			}
			s, err := pick(catalog, name)
			if err != nil {
				return err
			}
			return runPrompt(cmd, surveyDriver{}, s, retries)
		},
	}

	src.register(cmd)
	cmd.Flags().StringVarP(&name, "name", "n", "", "schema to fill (optional when only one is loaded)")
	cmd.Flags().IntVar(&retries, "retries", 3, "how many times failed fields are asked again")
	return cmd
}

func runPrompt(cmd *cobra.Command, d promptDriver, s *schema.Schema, retries int) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	p := newPrinter(cmd.OutOrStdout())

	data := schema.Data{}
	var only map[string]bool
	for attempt := 0; ; attempt++ {
		answers, err := ask(ctx, d, s, only)
		if err != nil {
			return err
		}
		for _, name := range s.Names() {
			if only == nil || only[name] {
				delete(data, name)
			}
		}
		for k, v := range answers {
			data[k] = v
		}

		res := s.Process(data)
		if res.IsValid() {
			p.success(s.Name())
			return writeJSON(cmd.OutOrStdout(), res.Value())
		}
		p.errors(s.Name(), res.Errors())
		if attempt >= retries {
			return errInvalidInput
		}

		only = make(map[string]bool, res.Errors().Len())
		for _, key := range res.Errors().Keys() {
			only[key] = true
		}
	}
}

// ask prompts for the fields of s, or only for those in only when it is not
// nil. Empty answers leave the field absent so defaults apply.
func ask(ctx context.Context, d promptDriver, s *schema.Schema, only map[string]bool) (schema.Data, error) {
	data := schema.Data{}
	for _, f := range s.Fields() {
		if only != nil && !only[f.Name()] {
			continue
		}
		v, ok, err := askField(ctx, d, f)
		if err != nil {
			return nil, err
		}
		if ok {
			data[f.Name()] = v
		}
	}
	return data, nil
}

func askField(ctx context.Context, d promptDriver, f schema.Field) (any, bool, error) {
	message := f.Label()
	if f.IsRequired() {
		message += " *"
	}
	def, hasDefault := f.Default()

	switch f.Kind() {
	case schema.KindBool:
		yes, _ := def.(bool)
		v, err := d.Confirm(ctx, confirmConfig{Message: message, Default: yes, Help: f.Description()})
		return v, err == nil, err

	case schema.KindObject:
		if !f.IsRequired() {
			fill, err := d.Confirm(ctx, confirmConfig{Message: "Fill " + f.Label() + "?"})
			if err != nil || !fill {
				return nil, false, err
			}
		}
		v, err := ask(ctx, d, f.Schema(), nil)
		return v, err == nil, err

	case schema.KindObjects:
		items := []any{}
		for i := 0; ; i++ {
			more, err := d.Confirm(ctx, confirmConfig{Message: fmt.Sprintf("Add %s item #%d?", f.Label(), i+1)})
			if err != nil {
				return nil, false, err
			}
			if !more {
				break
			}
			item, err := ask(ctx, d, f.Schema(), nil)
			if err != nil {
				return nil, false, err
			}
			items = append(items, item)
		}
		if len(items) == 0 && hasDefault {
			return nil, false, nil
		}
		return items, true, nil

	case schema.KindList:
		answer, err := d.Input(ctx, inputConfig{Message: message + " (comma separated)", Help: f.Description()})
		if err != nil || strings.TrimSpace(answer) == "" {
			return nil, false, err
		}
		var items []any
		for part := range strings.SplitSeq(answer, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		return items, true, nil
	}

	cfg := inputConfig{Message: message, Help: f.Description()}
	if hasDefault && def != nil {
		cfg.Default = fmt.Sprint(def)
	}
	read := d.Input
	if f.Format() == "password" {
		read = d.Password
	}
	answer, err := read(ctx, cfg)
	if err != nil || answer == "" {
		return nil, false, err
	}
	return answer, true, nil
}

type surveyDriver struct{}

func (surveyDriver) Input(ctx context.Context, cfg inputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyDriver) Password(ctx context.Context, cfg inputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Password{Message: cfg.Message, Help: cfg.Help}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyDriver) Confirm(ctx context.Context, cfg confirmConfig) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	prompt := &survey.Confirm{Message: cfg.Message, Default: cfg.Default, Help: cfg.Help}
	if err := survey.AskOne(prompt, &out); err != nil {
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
