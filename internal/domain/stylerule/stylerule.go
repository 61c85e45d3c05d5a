package stylerule

import (
	"strings"
	"time"

	"github.com/janhq/translate-mock/internal/utils/platformerrors"
)

// DefaultID identifies the built-in rule visible to every account.
const DefaultID = "dca2e053-8ae5-45e6-a0d2-881156e7f4e4"

const maxPageSize = 25

func validation(message string) *platformerrors.PlatformError {
	return platformerrors.Sentinel(platformerrors.LayerDomain, platformerrors.ErrorTypeValidation, message)
}

var (
	ErrStyleRuleNotFound = platformerrors.Sentinel(platformerrors.LayerDomain, platformerrors.ErrorTypeNotFound, "not found")
	ErrInvalidStyleID    = validation("Invalid style_id")
	ErrMissingName       = validation("Missing or invalid argument: name")
	ErrLanguage          = validation("Value for 'language' not supported.")
	ErrInstruction       = validation("Custom instructions require a label and a prompt")
	ErrPagination        = validation("Invalid pagination parameters")
	ErrLanguageMismatch  = validation("Style rule language does not match target_lang")
)

// ConfiguredRules groups rule settings by category, e.g.
// dates_and_times -> calendar_era -> use_bce_and_ce.
type ConfiguredRules map[string]map[string]string

// CustomInstruction is a free-form instruction attached to a rule.
type CustomInstruction struct {
	Label          string `json:"label"`
	Prompt         string `json:"prompt"`
	SourceLanguage string `json:"source_language,omitempty"`
}

// StyleRule is immutable once registered. An empty Owner means the rule is
// shared by every account.
type StyleRule struct {
	ID        string
	Owner     string
	Name      string
	Language  string
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time

	ConfiguredRules    ConfiguredRules
	CustomInstructions []CustomInstruction
}

// Info is the client view of a rule.
type Info struct {
	ID        string
	Name      string
	Language  string
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time

	// Set only for detailed listings.
	Detailed           bool
	ConfiguredRules    ConfiguredRules
	CustomInstructions []CustomInstruction
}

// Info renders r, including its rules when detailed is set.
func (r *StyleRule) Info(detailed bool) Info {
	info := Info{
		ID:        r.ID,
		Name:      r.Name,
		Language:  strings.ToLower(r.Language),
		Version:   r.Version,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if detailed {
		info.Detailed = true
		info.ConfiguredRules = r.ConfiguredRules
		if info.ConfiguredRules == nil {
			info.ConfiguredRules = ConfiguredRules{}
		}
		info.CustomInstructions = append([]CustomInstruction{}, r.CustomInstructions...)
	}
	return info
}

func (r *StyleRule) visibleTo(owner string) bool {
	return r.Owner == "" || r.Owner == owner
}

func defaultRule() *StyleRule {
	epoch := time.Unix(0, 0).UTC()
	return &StyleRule{
		ID:        DefaultID,
		Name:      "Default Style Rule",
		Language:  "en",
		Version:   1,
		CreatedAt: epoch,
		UpdatedAt: epoch,
		ConfiguredRules: ConfiguredRules{
			"dates_and_times": {"calendar_era": "use_bce_and_ce"},
		},
	}
}
