// Package notebook rewrites Jupyter notebook documents: it clears code-cell
// outputs and patches known typos in code sources. Fields it does not touch
// survive a load/save cycle unchanged.
package notebook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotNotebook is returned when a document has no cells array.
var ErrNotNotebook = errors.New("not a notebook document")

const codeCell = "code"

// Notebook is a parsed notebook document
type Notebook struct {
	Cells  []*Cell
	fields map[string]json.RawMessage
}

// Cell is one notebook cell; Source holds its lines with their newlines
type Cell struct {
	Type   string
	Source []string

	sourceIsString bool
	fields         map[string]json.RawMessage
}

// Replacement substitutes Old with New in code sources
type Replacement struct {
	Old string `yaml:"old" json:"old"`
	New string `yaml:"new" json:"new"`
}

// DefaultReplacements are the typo fixes applied by "notebook fix".
func DefaultReplacements() []Replacement {
	return []Replacement{
		{Old: "np.random.etreta", New: "np.random.beta"},
		{Old: "relgraphiqueation", New: "relation"},
		{Old: "correlgraphiqueations", New: "correlations"},
		{Old: "correlgraphiquees", New: "correlées"},
		{Old: "age_facar", New: "age_factor"},
		{Old: "satisfaction_facar", New: "satisfaction_factor"},
	}
}

// Parse decodes a notebook document.
func Parse(data []byte) (*Notebook, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotNotebook, err)
	}
	rawCells, ok := fields["cells"]
	if !ok {
		return nil, fmt.Errorf("%w: missing cells", ErrNotNotebook)
	}
	var cells []map[string]json.RawMessage
	if err := json.Unmarshal(rawCells, &cells); err != nil {
		return nil, fmt.Errorf("%w: cells: %v", ErrNotNotebook, err)
	}

	nb := &Notebook{fields: fields, Cells: make([]*Cell, 0, len(cells))}
	for i, cf := range cells {
		c, err := parseCell(cf)
		if err != nil {
			return nil, fmt.Errorf("%w: cell %d: %v", ErrNotNotebook, i, err)
		}
		nb.Cells = append(nb.Cells, c)
	}
	return nb, nil
}

func parseCell(fields map[string]json.RawMessage) (*Cell, error) {
	c := &Cell{fields: fields}
	if raw, ok := fields["cell_type"]; ok {
		if err := json.Unmarshal(raw, &c.Type); err != nil {
			return nil, fmt.Errorf("cell_type: %w", err)
		}
	}
	raw, ok := fields["source"]
	if !ok {
		return c, nil
	}
	if err := json.Unmarshal(raw, &c.Source); err == nil {
		return c, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	c.sourceIsString = true
	c.Source = strings.SplitAfter(s, "\n")
	if n := len(c.Source); n > 0 && c.Source[n-1] == "" {
		c.Source = c.Source[:n-1]
	}
	return c, nil
}

// IsCode reports whether the cell holds code.
func (c *Cell) IsCode() bool { return c.Type == codeCell }

func (c *Cell) marshalFields() (map[string]json.RawMessage, error) {
	if c.Source == nil && c.fields["source"] == nil {
		return c.fields, nil
	}
	var src any = c.Source
	if c.sourceIsString {
		src = strings.Join(c.Source, "")
	} else if c.Source == nil {
		src = []string{}
	}
	raw, err := marshal(src)
	if err != nil {
		return nil, err
	}
	c.fields["source"] = raw
	return c.fields, nil
}

// ClearOutputs empties the outputs and resets the execution counter of every
// code cell. It returns the number of code cells visited.
func (nb *Notebook) ClearOutputs() int {
	n := 0
	for _, c := range nb.Cells {
		if !c.IsCode() {
			continue
		}
		c.fields["outputs"] = json.RawMessage("[]")
		c.fields["execution_count"] = json.RawMessage("null")
		n++
	}
	return n
}

// FixSource applies the replacements in order to every code-cell line and
// returns the number of cells that changed.
func (nb *Notebook) FixSource(replacements []Replacement) int {
	changed := 0
	for _, c := range nb.Cells {
		if !c.IsCode() {
			continue
		}
		touched := false
		for i, line := range c.Source {
			fixed := line
			for _, r := range replacements {
				if r.Old != "" {
					fixed = strings.ReplaceAll(fixed, r.Old, r.New)
				}
			}
			if fixed != line {
				c.Source[i] = fixed
				touched = true
			}
		}
		if touched {
			changed++
		}
	}
	return changed
}

// Marshal encodes the notebook with one-space indentation and without
// escaping non-ASCII or HTML characters.
func (nb *Notebook) Marshal() ([]byte, error) {
	cells := make([]map[string]json.RawMessage, 0, len(nb.Cells))
	for i, c := range nb.Cells {
		f, err := c.marshalFields()
		if err != nil {
			return nil, fmt.Errorf("cell %d: %w", i, err)
		}
		cells = append(cells, f)
	}
	raw, err := marshal(cells)
	if err != nil {
		return nil, err
	}
	nb.fields["cells"] = raw

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")
	if err := enc.Encode(nb.fields); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func marshal(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Load reads and parses a notebook file.
func Load(path string) (*Notebook, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read notebook: %w", err)
	}
	nb, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return nb, nil
}

// Save writes the notebook to path.
func Save(path string, nb *Notebook) error {
	data, err := nb.Marshal()
	if err != nil {
		return fmt.Errorf("failed to encode notebook: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write notebook: %w", err)
	}
	return nil
}
