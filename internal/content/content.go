// Package content holds the medical lookup tables: symptom categories
// with triage advice, the medicine directory, and the emergency help
// text. The tables are an external collaborator to the engine; this
// package is their YAML-backed reference implementation so the lookup
// flows stay exercisable in tests and local runs.
package content

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Category is one symptom category with its triage advice.
type Category struct {
	ID     string `yaml:"id"`
	Label  string `yaml:"label"`
	Advice string `yaml:"advice"`
}

// Medicine is one entry in the medicine directory.
type Medicine struct {
	Name        string   `yaml:"name"`
	Ingredient  string   `yaml:"ingredient"`
	Indications string   `yaml:"indications"`
	Analogues   []string `yaml:"analogues"`
}

// Pack is the full content set.
type Pack struct {
	Categories []Category `yaml:"categories"`
	Medicines  []Medicine `yaml:"medicines"`
	Emergency  string     `yaml:"emergency"`
}

// Load reads a content pack from a YAML file.
func Load(path string) (*Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}

	var p Pack
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("load content: parse %s: %w", path, err)
	}
	if len(p.Categories) == 0 {
		return nil, fmt.Errorf("load content: %s defines no symptom categories", path)
	}
	return &p, nil
}

// Default returns the built-in content pack, used when no content file
// is configured.
func Default() *Pack {
	return &Pack{
		Categories: []Category{
			{ID: "respiratory", Label: "Cold & flu", Advice: "Rest, drink warm fluids, and monitor your temperature. See a doctor if fever persists beyond three days."},
			{ID: "digestive", Label: "Digestive", Advice: "Stay hydrated and keep to a light diet. Seek care for severe or persistent abdominal pain."},
			{ID: "headache", Label: "Headache", Advice: "Rest in a quiet, dark room and stay hydrated. Sudden severe headache warrants immediate medical attention."},
			{ID: "allergy", Label: "Allergy", Advice: "Avoid the suspected trigger. Difficulty breathing or facial swelling is an emergency - call an ambulance."},
			{ID: "other", Label: "Other", Advice: "Describe your symptoms to a medical professional if they persist or worsen."},
		},
		Medicines: []Medicine{
			{
				Name:        "Paracetamol",
				Ingredient:  "Paracetamol",
				Indications: "Fever reduction, pain relief.",
				Analogues:   []string{"Panadol", "Efferalgan", "Cefecon D"},
			},
			{
				Name:        "Ibuprofen",
				Ingredient:  "Ibuprofen",
				Indications: "Anti-inflammatory, pain relief, fever reduction.",
				Analogues:   []string{"Nurofen", "Mig", "Faspic"},
			},
		},
		Emergency: "In case of a real threat to life or health, contact a doctor or call an ambulance immediately!\n" +
			"Emergency numbers:\n" +
			"- Ambulance: 103 (or 112)\n" +
			"- Fire service: 101\n" +
			"- Police: 102",
	}
}

// CategoryByID returns the category with the given id.
func (p *Pack) CategoryByID(id string) (Category, bool) {
	for _, c := range p.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// FindMedicine looks a medicine up by name. Matching is case-insensitive
// on NFC-normalized text and tolerates the query containing the name or
// the name containing the query.
func (p *Pack) FindMedicine(query string) (Medicine, bool) {
	q := Normalize(query)
	if q == "" {
		return Medicine{}, false
	}
	q = strings.ToLower(q)

	for _, m := range p.Medicines {
		name := strings.ToLower(Normalize(m.Name))
		if strings.Contains(q, name) || strings.Contains(name, q) {
			return m, true
		}
	}
	return Medicine{}, false
}

// Normalize trims whitespace and applies NFC normalization, so visually
// identical user input compares equal regardless of how the transport
// composed it.
func Normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
