package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	shiperrors "github.com/alexisbeaulieu97/shipshape/pkg/errors"
)

// ValidateConfig performs structural and cross-field validation on an entire
// configuration.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return shiperrors.NewValidationError("config", "configuration is nil", nil)
	}

	v := validatorInstance()
	if err := v.Struct(cfg); err != nil {
		return convertValidationError(err)
	}

	itemIndex := make(map[string]int, len(cfg.Items))
	for i, item := range cfg.Items {
		if _, exists := itemIndex[item.ID]; exists {
			return shiperrors.NewValidationError(fieldForItem(i, "id"), fmt.Sprintf("duplicate item id %q", item.ID), nil)
		}
		itemIndex[item.ID] = i

		if err := validateItemCriteria(item, i); err != nil {
			return err
		}
	}

	if cfg.Wizard != nil {
		if err := validateWizard(cfg.Wizard, itemIndex); err != nil {
			return err
		}
	}

	if cfg.Audit != nil {
		if err := validateAudit(cfg.Audit); err != nil {
			return err
		}
	}

	return nil
}

// validateItemCriteria enforces that repo and command checks stand alone: the
// path/key cascade has fixed precedence rules that standalone criteria would
// silently shadow.
func validateItemCriteria(item Item, index int) error {
	hasPathOrKey := len(item.Paths) > 0 || item.Key != ""

	if item.Repo != nil {
		if hasPathOrKey {
			return shiperrors.NewValidationError(fieldForItem(index, "repo"), "repo check cannot be combined with paths or key", nil)
		}
		if item.Command != "" {
			return shiperrors.NewValidationError(fieldForItem(index, "repo"), "repo check cannot be combined with command", nil)
		}
	}

	if item.Command != "" && hasPathOrKey {
		return shiperrors.NewValidationError(fieldForItem(index, "command"), "command check cannot be combined with paths or key", nil)
	}

	if item.Expect != "" && item.Key == "" {
		return shiperrors.NewValidationError(fieldForItem(index, "expect"), "expect requires a key", nil)
	}

	if item.Store != "" && item.Key == "" {
		return shiperrors.NewValidationError(fieldForItem(index, "store"), "store override requires a key", nil)
	}

	return nil
}

func validateWizard(w *Wizard, itemIndex map[string]int) error {
	seen := make(map[string]struct{}, len(w.Pages))
	for i, page := range w.Pages {
		if _, ok := itemIndex[page.Item]; !ok {
			return shiperrors.NewValidationError(fieldForPage(i, "item"), fmt.Sprintf("references unknown item %q", page.Item), nil)
		}
		if _, dup := seen[page.Item]; dup {
			return shiperrors.NewValidationError(fieldForPage(i, "item"), fmt.Sprintf("item %q appears on more than one page", page.Item), nil)
		}
		seen[page.Item] = struct{}{}
	}

	if w.Picker != nil {
		optSeen := make(map[string]struct{}, len(w.Picker.Options))
		for i, opt := range w.Picker.Options {
			if _, dup := optSeen[opt.ID]; dup {
				return shiperrors.NewValidationError(fieldForPickerOption(i), fmt.Sprintf("duplicate picker option %q", opt.ID), nil)
			}
			optSeen[opt.ID] = struct{}{}
		}
	}

	return nil
}

func validateAudit(a *Audit) error {
	seen := make(map[string]struct{}, len(a.Sources))
	for i, src := range a.Sources {
		if _, dup := seen[src.Name]; dup {
			return shiperrors.NewValidationError(fieldForSource(i, "name"), fmt.Sprintf("duplicate audit source %q", src.Name), nil)
		}
		seen[src.Name] = struct{}{}
	}
	return nil
}

// convertValidationError normalizes validator errors into shipshape
// validation errors.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return shiperrors.NewValidationError(field, msg, err)
	}

	return shiperrors.NewValidationError("config", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	var lowered []string
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}

func fieldForItem(index int, field string) string {
	return fmt.Sprintf("items[%d].%s", index, field)
}

func fieldForPage(index int, field string) string {
	return fmt.Sprintf("wizard.pages[%d].%s", index, field)
}

func fieldForPickerOption(index int) string {
	return fmt.Sprintf("wizard.picker.options[%d].id", index)
}

func fieldForSource(index int, field string) string {
	return fmt.Sprintf("audit.sources[%d].%s", index, field)
}
