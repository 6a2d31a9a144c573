package templates

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/2beens/gymtracker/internal/gymstats/workout"
)

// FileSource reads templates from <dir>/<workoutID>.yaml files.
type FileSource struct {
	dir string
}

func NewFileSource(dir string) *FileSource {
	return &FileSource{
		dir: dir,
	}
}

func (s *FileSource) GetTemplateByID(_ context.Context, workoutID string) (workout.Template, error) {
	// IDs are file names, path separators would escape the directory
	if workoutID == "" || strings.ContainsAny(workoutID, `/\`) || strings.HasPrefix(workoutID, ".") {
		return workout.Template{}, workout.ErrTemplateNotFound
	}

	path := filepath.Join(s.dir, workoutID+".yaml")
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return workout.Template{}, workout.ErrTemplateNotFound
	}
	if err != nil {
		return workout.Template{}, fmt.Errorf("read template file %s: %w", path, err)
	}

	template, err := parseTemplate(raw)
	if err != nil {
		return workout.Template{}, fmt.Errorf("template file %s: %w", path, err)
	}
	if template.ID == "" {
		template.ID = workoutID
	}
	return template, nil
}

// Templates loads every template in the directory.
func (s *FileSource) Templates() ([]workout.Template, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("list template files: %w", err)
	}

	templates := make([]workout.Template, 0, len(paths))
	for _, path := range paths {
		id := strings.TrimSuffix(filepath.Base(path), ".yaml")
		template, err := s.GetTemplateByID(context.Background(), id)
		if err != nil {
			return nil, err
		}
		templates = append(templates, template)
	}
	return templates, nil
}

func parseTemplate(raw []byte) (workout.Template, error) {
	var template workout.Template
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&template); err != nil {
		return workout.Template{}, fmt.Errorf("decode yaml: %w", err)
	}
	for i, slot := range template.Exercises {
		if strings.TrimSpace(slot.ExerciseID) == "" {
			return workout.Template{}, fmt.Errorf("exercise %d has no exercise_id", i)
		}
	}
	return template, nil
}
