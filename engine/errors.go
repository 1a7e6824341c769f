package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"narrate/engine/ast"
	"narrate/engine/lexer"
	"narrate/engine/parser"
)

// ErrInputClosed ends a session when the player's input runs out.
var ErrInputClosed = errors.New("player input closed")

// ResolutionError is a scene or module that does not exist in the loaded file.
type ResolutionError struct {
	ScopedID   string
	Suggestion string
}

func (e *ResolutionError) Error() string {
	msg := fmt.Sprintf("No such scene [%s]", e.ScopedID)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(", did you mean [%s]?", e.Suggestion)
	}
	return msg
}

func newResolutionError(ref ast.SceneReference, file *ast.File) *ResolutionError {
	toret := &ResolutionError{ScopedID: ref.String()}
	if file != nil {
		toret.Suggestion = closestMatch(ref.String(), file.SceneIDs())
	}
	return toret
}

// UserInputError is a selection that is not a number in [1, Count].
type UserInputError struct {
	Raw   string
	Count int
}

func (e *UserInputError) Error() string {
	return fmt.Sprintf("Invalid selection [%s]: choose a number from 1 to %d", e.Raw, e.Count)
}

// DeadEndError is a scene whose options are all hidden by their conditions.
type DeadEndError struct {
	ScopedID string
}

func (e *DeadEndError) Error() string {
	return fmt.Sprintf("Scene [%s] has no visible options", e.ScopedID)
}

// FileError ties a failure to the story file that was active when it
// happened. Source is kept when available so Report can show the lines.
type FileError struct {
	Filename string
	Source   string
	Err      error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("in file %s: %v", e.Filename, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Report renders the error for a terminal: the file, the message and, when
// the cause has a line number, the surrounding source lines.
func (e *FileError) Report() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Error in file %s\n%v\n", e.Filename, e.Err)
	if line := errorLine(e.Err); line > 0 && e.Source != "" {
		sb.WriteString(snippet(e.Source, line))
	}
	return sb.String()
}

func errorLine(err error) int {
	var lexErr *lexer.Error
	if errors.As(err, &lexErr) {
		return lexErr.Line
	}
	var synErr *parser.SyntaxError
	if errors.As(err, &synErr) {
		return synErr.Line
	}
	var sErr *ast.StructuralError
	if errors.As(err, &sErr) {
		return sErr.Line
	}
	return 0
}

// snippet shows line with one line of context either side.
func snippet(src string, line int) string {
	lines := strings.Split(src, "\n")
	if line > len(lines) {
		line = len(lines)
	}
	var sb strings.Builder
	for i := max(1, line-1); i <= min(len(lines), line+1); i++ {
		marker := "  "
		if i == line {
			marker = "> "
		}
		fmt.Fprintf(&sb, "%s%4d | %s\n", marker, i, lines[i-1])
	}
	return sb.String()
}

// closestMatch picks the candidate a mistyped scoped id most likely meant.
func closestMatch(target string, candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) > 0 {
		sort.Sort(ranks)
		return ranks[0].Target
	}
	best, bestDist := "", -1
	limit := max(2, len(target)/3)
	for _, c := range candidates {
		d := fuzzy.LevenshteinDistance(strings.ToLower(target), strings.ToLower(c))
		if d > limit {
			continue
		}
		if bestDist < 0 || d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
