package ops

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gsdenys/pdgen/internal/model"
)

// IssueType represents the kind of store integrity issue.
type IssueType string

const (
	IssueDuplicateName    IssueType = "duplicate_name"
	IssueMissingURL       IssueType = "missing_url"
	IssueInvalidURL       IssueType = "invalid_url"
	IssueMultipleSelected IssueType = "multiple_selected"
	IssueUnnormalizedName IssueType = "unnormalized_name"
	IssueUnknownVersion   IssueType = "unknown_version"
)

// Issue represents a data integrity problem in a hand-edited store file.
type Issue struct {
	Type    IssueType
	Name    string
	Message string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s: %s - %s", i.Name, i.Type, i.Message)
}

// Validate checks a registry as decoded from disk, before normalization.
// Issues are reported in file order.
func Validate(reg *model.Registry) []Issue {
	var issues []Issue

	if reg.Version != model.CurrentVersion {
		issues = append(issues, Issue{
			Type:    IssueUnknownVersion,
			Name:    "version",
			Message: fmt.Sprintf("expected %d, got %d", model.CurrentVersion, reg.Version),
		})
	}

	seen := make(map[string]string)
	var selected []string
	for _, c := range reg.Connections {
		normalized := model.NormalizeName(c.Name)

		if c.Name != normalized {
			issues = append(issues, Issue{
				Type:    IssueUnnormalizedName,
				Name:    c.Name,
				Message: fmt.Sprintf("will be read as %s", normalized),
			})
		}

		if first, ok := seen[normalized]; ok {
			issues = append(issues, Issue{
				Type:    IssueDuplicateName,
				Name:    c.Name,
				Message: fmt.Sprintf("same name as %s; only the first entry is used", first),
			})
		} else {
			seen[normalized] = c.Name
		}

		switch {
		case strings.TrimSpace(c.URL) == "":
			issues = append(issues, Issue{
				Type:    IssueMissingURL,
				Name:    c.Name,
				Message: "url is empty",
			})
		default:
			if _, err := url.Parse(c.URL); err != nil {
				issues = append(issues, Issue{
					Type:    IssueInvalidURL,
					Name:    c.Name,
					Message: err.Error(),
				})
			}
		}

		if c.Selected {
			selected = append(selected, c.Name)
		}
	}

	if len(selected) > 1 {
		issues = append(issues, Issue{
			Type:    IssueMultipleSelected,
			Name:    strings.Join(selected, ", "),
			Message: fmt.Sprintf("only %s stays selected", selected[0]),
		})
	}

	return issues
}
