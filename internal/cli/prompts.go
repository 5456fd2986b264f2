package cli

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/painelfin/painelgo/internal/backend"
)

// promptInput asks for one line of text.
func promptInput(message, defaultValue string) (string, error) {
	var answer string
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// promptSelect asks the user to pick one option.
func promptSelect(message string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("nenhuma opção disponível")
	}
	var answer string
	prompt := &survey.Select{
		Message: message,
		Options: options,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return "", err
	}
	return answer, nil
}

// promptEditor opens $EDITOR for multi-line content.
func promptEditor(message string) (string, error) {
	return promptEditorWithDefault(message, "")
}

func promptEditorWithDefault(message, defaultValue string) (string, error) {
	var answer string
	prompt := &survey.Editor{
		Message:       message,
		Default:       defaultValue,
		AppendDefault: true,
		HideDefault:   true,
	}
	if err := survey.AskOne(prompt, &answer); err != nil {
		return "", err
	}
	return answer, nil
}

// promptCompanyNewsForm lets the user confirm or fix the prefilled article
// fields before the create request goes out.
func promptCompanyNewsForm(prefill backend.CreateCompanyNews) (backend.CreateCompanyNews, error) {
	questions := []*survey.Question{
		{
			Name:     "title",
			Prompt:   &survey.Input{Message: "Título:", Default: prefill.Title},
			Validate: survey.Required,
		},
		{
			Name:   "summary",
			Prompt: &survey.Input{Message: "Resumo:", Default: prefill.Summary},
		},
		{
			Name:   "source",
			Prompt: &survey.Input{Message: "Portal:", Default: prefill.Source},
		},
		{
			Name:   "publishedDate",
			Prompt: &survey.Input{Message: "Data de publicação (ISO-8601):", Default: prefill.PublishedDate},
		},
	}

	answers := struct {
		Title         string
		Summary       string
		Source        string
		PublishedDate string
	}{}
	if err := survey.Ask(questions, &answers); err != nil {
		return backend.CreateCompanyNews{}, err
	}

	prefill.Title = strings.TrimSpace(answers.Title)
	prefill.Summary = strings.TrimSpace(answers.Summary)
	prefill.Source = strings.TrimSpace(answers.Source)
	prefill.PublishedDate = strings.TrimSpace(answers.PublishedDate)
	return prefill, nil
}
