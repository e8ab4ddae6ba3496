package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/switchpuzzle/pkg/perm"
	"github.com/matzehuels/switchpuzzle/pkg/route"
)

// Document is the JSON export of one evaluation.
type Document struct {
	Initial string        `json:"initial"`
	Goal    string        `json:"goal"`
	Stages  []jsonStage   `json:"stages"`
	Summary route.Summary `json:"summary"`
	Reports []jsonReport  `json:"reports"`
}

type jsonStage struct {
	Name string   `json:"name"`
	Ops  []string `json:"ops"`
}

type jsonReport struct {
	Index   int          `json:"index"`
	Trail   string       `json:"trail"`
	Choices []jsonChoice `json:"choices"`
	Steps   []string     `json:"steps"`
	Result  string       `json:"result"`
	Reached bool         `json:"reached"`
}

type jsonChoice struct {
	Label    string `json:"label"`
	Op       string `json:"op"`
	Position int    `json:"position"`
}

// NewDocument builds the export of reports for in.
func NewDocument(in route.Input, reports []route.Report, summary route.Summary) Document {
	doc := Document{
		Initial: in.Initial.String(),
		Goal:    in.Goal.String(),
		Stages:  make([]jsonStage, len(in.Stages)),
		Summary: summary,
		Reports: make([]jsonReport, len(reports)),
	}
	for i, s := range in.Stages {
		st := jsonStage{Name: in.StageName(i), Ops: make([]string, len(s.Ops))}
		for j, op := range s.Ops {
			st.Ops[j] = op.Label()
		}
		doc.Stages[i] = st
	}
	for i, r := range reports {
		jr := jsonReport{
			Index:   r.Index,
			Trail:   r.Trail(),
			Choices: make([]jsonChoice, len(r.Choices)),
			Steps:   make([]string, len(r.Steps)),
			Result:  r.Result.String(),
			Reached: r.Reached,
		}
		for j, c := range r.Choices {
			jr.Choices[j] = jsonChoice{Label: c.Label, Op: r.Ops[j].String(), Position: c.Position}
		}
		for j, a := range r.Steps {
			jr.Steps[j] = a.String()
		}
		doc.Reports[i] = jr
	}
	return doc
}

// JSON writes the indented export of reports for in.
func JSON(w io.Writer, in route.Input, reports []route.Report, summary route.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(NewDocument(in, reports, summary))
}

// DecodeDocument parses a JSON export.
func DecodeDocument(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("decode document: %w", err)
	}
	return doc, nil
}

// RouteReports rebuilds the reports of the document.
func (d Document) RouteReports() ([]route.Report, error) {
	out := make([]route.Report, len(d.Reports))
	for i, jr := range d.Reports {
		r := route.Report{
			Index:   jr.Index,
			Choices: make([]route.Choice, len(jr.Choices)),
			Ops:     make([]perm.Operation, len(jr.Choices)),
			Steps:   make([]perm.Arrangement, len(jr.Steps)),
			Reached: jr.Reached,
		}
		for j, c := range jr.Choices {
			op, err := perm.ParseOperation(c.Op)
			if err != nil {
				return nil, fmt.Errorf("report %d choice %d: %w", jr.Index, j+1, err)
			}
			r.Ops[j] = op.WithLabel(c.Label)
			r.Choices[j] = route.Choice{Label: c.Label, Position: c.Position}
		}
		for j, s := range jr.Steps {
			a, err := perm.ParseArrangement(s)
			if err != nil {
				return nil, fmt.Errorf("report %d step %d: %w", jr.Index, j+1, err)
			}
			r.Steps[j] = a
		}
		res, err := perm.ParseArrangement(jr.Result)
		if err != nil {
			return nil, fmt.Errorf("report %d result: %w", jr.Index, err)
		}
		r.Result = res
		out[i] = r
	}
	return out, nil
}
