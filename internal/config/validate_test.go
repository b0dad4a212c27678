package config

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	shiperrors "github.com/alexisbeaulieu97/shipshape/pkg/errors"
)

func baseConfig() *Config {
	return &Config{
		Version: "1.0",
		Name:    "test",
		Items: []Item{
			{ID: "one", Paths: []string{"/tmp/one"}},
			{ID: "two", Key: "a.b", Expect: "true"},
		},
	}
}

func TestValidateConfigAcceptsBase(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateConfig(baseConfig()))
}

func TestValidateConfigRejectsNil(t *testing.T) {
	t.Parallel()

	err := ValidateConfig(nil)
	require.Error(t, err)
}

func TestValidateConfigDuplicateItemIDs(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.Items = append(cfg.Items, Item{ID: "one", Paths: []string{"/tmp/other"}})

	err := ValidateConfig(cfg)
	require.Error(t, err)

	var validationErr *shiperrors.ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Contains(t, validationErr.Message, "duplicate item id")
}

func TestValidateConfigCriteriaExclusivity(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		item Item
		want string
	}{
		{
			name: "repo with paths",
			item: Item{ID: "bad", Paths: []string{"/tmp/x"}, Repo: &RepoCheck{Destination: "/tmp/x"}},
			want: "repo check cannot be combined",
		},
		{
			name: "repo with command",
			item: Item{ID: "bad", Command: "git", Repo: &RepoCheck{Destination: "/tmp/x"}},
			want: "repo check cannot be combined",
		},
		{
			name: "command with key",
			item: Item{ID: "bad", Key: "a.b", Command: "git"},
			want: "command check cannot be combined",
		},
		{
			name: "expect without key",
			item: Item{ID: "bad", Paths: []string{"/tmp/x"}, Expect: "true"},
			want: "expect requires a key",
		},
		{
			name: "store without key",
			item: Item{ID: "bad", Paths: []string{"/tmp/x"}, Store: "/tmp/state.json"},
			want: "store override requires a key",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			cfg := baseConfig()
			cfg.Items = append(cfg.Items, tc.item)

			err := ValidateConfig(cfg)
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValidateConfigWizardReferences(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.Wizard = &Wizard{Pages: []Page{{Item: "missing"}}}

	err := ValidateConfig(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown item")

	cfg.Wizard = &Wizard{Pages: []Page{{Item: "one"}, {Item: "one"}}}
	err = ValidateConfig(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "more than one page")
}

func TestValidateConfigPickerOptions(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.Wizard = &Wizard{
		Picker: &Picker{
			Mode:    "single",
			Options: []PickerOption{{ID: "opt_a"}, {ID: "opt_a"}},
		},
	}

	err := ValidateConfig(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate picker option")
}

func TestValidateConfigAuditSources(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.Audit = &Audit{
		Sources: []AuditSource{
			{Name: "baseline", Path: "/tmp/a.json"},
			{Name: "baseline", Path: "/tmp/b.json"},
		},
	}

	err := ValidateConfig(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate audit source")
}

func TestValidateConfigColorRule(t *testing.T) {
	t.Parallel()

	cases := []struct {
		color string
		valid bool
	}{
		{"#00ff00", true},
		{"42", true},
		{"255", true},
		{"256", false},
		{"green", false},
		{"#12345", false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(fmt.Sprintf("color_%s", tc.color), func(t *testing.T) {
			t.Parallel()

			cfg := baseConfig()
			cfg.Settings.Highlight = tc.color

			err := ValidateConfig(cfg)
			if tc.valid {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
