package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	sarif "github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/pathreach/analyzer/model"
)

// Write renders notes to w in the requested format.
func Write(w io.Writer, notes []model.PathNote, opts *OutputOptions) error {
	switch opts.Format {
	case FormatJSON:
		return writeJSON(w, notes)
	case FormatCSV:
		return writeCSV(w, notes)
	case FormatSARIF:
		return writeSARIF(w, notes)
	default:
		return writeText(w, notes)
	}
}

func writeJSON(w io.Writer, notes []model.PathNote) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(notes)
}

func writeCSV(w io.Writer, notes []model.PathNote) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()
	if err := cw.Write([]string{"startLine", "endLine", "reachable", "explanation"}); err != nil {
		return err
	}
	for _, n := range notes {
		if err := cw.Write([]string{
			strconv.Itoa(n.StartLine),
			strconv.Itoa(n.EndLine),
			strconv.FormatBool(n.Reachable),
			n.Explanation,
		}); err != nil {
			return err
		}
	}
	return nil
}

// writeText renders a human-readable summary, highlighting unreachable
// ranges the way a terminal reviewer scans for first: in red.
func writeText(w io.Writer, notes []model.PathNote) error {
	if len(notes) == 0 {
		fmt.Fprintln(w, "no unreachable branches found")
		return nil
	}
	unreachable := color.New(color.FgRed, color.Bold)
	informational := color.New(color.FgYellow)
	for _, n := range notes {
		if !n.Reachable {
			unreachable.Fprintf(w, "line %d-%d: unreachable\n", n.StartLine, n.EndLine)
			continue
		}
		if n.Explanation != "" {
			informational.Fprintf(w, "line %d-%d: %s\n", n.StartLine, n.EndLine, n.Explanation)
		}
	}
	return nil
}

// writeSARIF renders the SARIF 2.1.0 log format a CI code-scanning
// consumer expects, one result per unreachable PathNote.
func writeSARIF(w io.Writer, notes []model.PathNote) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return err
	}
	run := sarif.NewRunWithInformationURI("pathreach", "https://github.com/pathreach/analyzer")
	run.Tool.Driver.WithVersion("0.1.0")
	run.AddRule("unreachable-branch").
		WithDescription("A branch whose predicate is unsatisfiable given the function's other constraints.").
		WithHelpURI("https://github.com/pathreach/analyzer")

	for _, n := range notes {
		if n.Reachable {
			continue
		}
		msg := n.Explanation
		if msg == "" {
			msg = "branch is unreachable"
		}
		run.CreateResultForRule("unreachable-branch").
			WithLevel("warning").
			WithMessage(sarif.NewTextMessage(msg)).
			AddLocation(
				sarif.NewLocationWithPhysicalLocation(
					sarif.NewPhysicalLocation().
						WithArtifactLocation(sarif.NewSimpleArtifactLocation("input")).
						WithRegion(sarif.NewSimpleRegion(n.StartLine, n.EndLine)),
				),
			)
	}
	report.AddRun(run)
	return report.PrettyWrite(w)
}
