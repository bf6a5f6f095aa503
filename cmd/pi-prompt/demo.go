// ABOUTME: Demo questionnaire exercising every prompt kind
// ABOUTME: Answers are collected into a struct and printed once the driver is closed

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mauromedda/pi-prompt/pkg/tui/form"
	"github.com/mauromedda/pi-prompt/pkg/tui/width"
)

type language struct {
	Name   string
	Typing string
}

var languages = []language{
	{"Go", "static"}, {"Rust", "static"}, {"Python", "dynamic"}, {"TypeScript", "static"},
	{"Ruby", "dynamic"}, {"Elixir", "dynamic"}, {"Zig", "static"}, {"OCaml", "static"},
	{"Lua", "dynamic"}, {"Haskell", "static"},
}

var toppings = []string{"Mozzarella", "Basil", "Mushrooms", "Olives", "Anchovies", "Pineapple"}

type answers struct {
	Name      string
	Age       int
	Password  string
	Subscribe bool
	Language  language
	Toppings  []string
	Tags      []string
}

func runDemo(ctx context.Context, p *form.Prompter) (*answers, error) {
	var a answers
	var err error

	if a.Name, err = form.Input(ctx, p, form.InputOptions[string]{
		Message:     "What is your name?",
		Placeholder: "Ada Lovelace",
		Validators:  []form.Validator[string]{form.Required[string](), form.MinLength(2)},
	}); err != nil {
		return nil, err
	}

	if a.Age, err = form.Input(ctx, p, form.InputOptions[int]{
		Message:    "How old are you?",
		Default:    "30",
		Validators: []form.Validator[int]{form.Custom(func(n int) bool { return n >= 0 && n <= 150 }, "Age must be between 0 and 150")},
	}); err != nil {
		return nil, err
	}

	if a.Password, err = form.Password(ctx, p, form.PasswordOptions{
		Message:    "Choose a password",
		Validators: []form.Validator[string]{form.MinLength(8), form.Matches(`[0-9]`)},
	}); err != nil {
		return nil, err
	}

	yes := true
	if a.Subscribe, err = form.Confirm(ctx, p, form.ConfirmOptions{
		Message: "Subscribe to the newsletter?",
		Default: &yes,
	}); err != nil {
		return nil, err
	}

	if a.Language, err = form.Select(ctx, p, form.SelectOptions[language]{
		Message:      "Favourite language",
		Items:        languages,
		Default:      &languages[0],
		TextSelector: func(l language) string { return l.Name + " (" + l.Typing + ")" },
		Fuzzy:        true,
	}); err != nil {
		return nil, err
	}

	if a.Toppings, err = form.MultiSelect(ctx, p, form.MultiSelectOptions[string]{
		Message:  "Pizza toppings",
		Items:    toppings,
		Defaults: []string{"Mozzarella"},
		Minimum:  1,
		Maximum:  3,
	}); err != nil {
		return nil, err
	}

	if a.Tags, err = form.List(ctx, p, form.ListOptions[string]{
		Message:    "Tags (empty line to finish)",
		Maximum:    5,
		Validators: []form.Validator[string]{form.MaxLength(16)},
	}); err != nil {
		return nil, err
	}
	return &a, nil
}

func printAnswers(w io.Writer, a *answers) {
	rows := [][2]string{
		{"name:", a.Name},
		{"age:", strconv.Itoa(a.Age)},
		{"password:", strings.Repeat("*", len([]rune(a.Password)))},
		{"subscribe:", strconv.FormatBool(a.Subscribe)},
		{"language:", a.Language.Name},
		{"toppings:", strings.Join(a.Toppings, ", ")},
		{"tags:", strings.Join(a.Tags, ", ")},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%s %s\n", width.PadRight(r[0], 10), r[1])
	}
}
