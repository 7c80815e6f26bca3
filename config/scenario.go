package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Run is one named experiment in a suite file.  Fields it does not set are
// inherited from the base configuration the suite was loaded with, except
// output paths, which default per run.
type Run struct {
	Name   string `yaml:"name"`
	Config `yaml:",inline"`
}

// LoadSuite reads the runs of a YAML suite file:
//
//	runs:
//	  - name: wide
//	    inertia: 0.9
//	  - name: tight
//	    inertia: 0.4
//	    iterations: 500
//
// Every run starts from base with its output paths cleared, so a run that
// does not name its own csv path appends to <name>.csv rather than sharing
// base's log.  Each run is validated before any run executes.
func LoadSuite(path string, base Config) ([]Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading suite %v: %w", path, err)
	}

	var raw struct {
		Runs []yaml.Node `yaml:"runs"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing suite %v: %w", path, err)
	}
	if len(raw.Runs) == 0 {
		return nil, fmt.Errorf("suite %v defines no runs", path)
	}

	runs := make([]Run, 0, len(raw.Runs))
	for i, node := range raw.Runs {
		r := Run{Config: base}
		r.CSVPath, r.DBPath, r.PlotPath = "", "", ""
		if err := node.Decode(&r); err != nil {
			return nil, fmt.Errorf("parsing suite %v run %v: %w", path, i+1, err)
		}
		if r.Name == "" {
			r.Name = fmt.Sprintf("run%v", i+1)
		}
		if r.CSVPath == "" {
			r.CSVPath = r.Name + ".csv"
		}
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("suite %v run %v: %w", path, r.Name, err)
		}
		runs = append(runs, r)
	}
	return runs, nil
}
