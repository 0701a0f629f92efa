// Package ingest decodes the input and Phase-2 settings documents of
// spec.md §6 (JSON or YAML, accepted from any file name) and converts them
// into the domain package's addressed-by-index model; the output document
// is encoded as YAML or JSON by file extension.
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"sigs.k8s.io/yaml"

	"github.com/cargostow/loadplan/pkg/apperrors"
	v1alpha1 "github.com/cargostow/loadplan/pkg/api/v1alpha1"
	"github.com/cargostow/loadplan/pkg/domain"
)

// ReadInput loads and decodes the input document at path, applies
// defaults, and validates it. sigs.k8s.io/yaml.Unmarshal accepts both
// JSON and YAML bytes (it round-trips YAML through JSON internally), so
// no separate JSON path is needed.
func ReadInput(path string) (*v1alpha1.Input, error) {
	var in v1alpha1.Input
	if err := readDocument(path, &in); err != nil {
		return nil, err
	}
	v1alpha1.SetDefaults_Input(&in)
	if err := v1alpha1.ValidateInput(&in); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInputMalformed, "input document failed validation", err)
	}
	return &in, nil
}

// ReadSettings loads and decodes the Phase-2 settings document path
// references, applies defaults, and validates it. An empty path returns a
// defaulted zero-value Settings, since spec.md treats the reference as
// optional in practice (every field has a documented default).
func ReadSettings(path string) (*v1alpha1.Settings, error) {
	var s v1alpha1.Settings
	if path != "" {
		if err := readDocument(path, &s); err != nil {
			return nil, err
		}
	}
	v1alpha1.SetDefaults_Settings(&s)
	if err := v1alpha1.ValidateSettings(&s); err != nil {
		return nil, apperrors.Wrap(apperrors.KindInputMalformed, "settings document failed validation", err)
	}
	return &s, nil
}

func readDocument(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.Wrap(apperrors.KindInputMalformed, fmt.Sprintf("reading %s", path), err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return apperrors.Wrap(apperrors.KindInputMalformed, fmt.Sprintf("parsing %s", path), err)
	}
	return nil
}

// isYAMLExt reports whether path's extension suggests YAML over JSON.
// readDocument doesn't need this (sigs.k8s.io/yaml.Unmarshal accepts
// both transparently), but WriteOutput does, since encoding has no
// equivalent auto-sniffing entry point.
func isYAMLExt(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

// ToDomain converts a decoded Input document into the domain package's
// box list and container spec.
func ToDomain(in *v1alpha1.Input) ([]domain.Box, domain.ContainerSpec) {
	boxes := make([]domain.Box, len(in.Items))
	for i, item := range in.Items {
		boxes[i] = domain.Box{
			ID:       item.ID,
			Nominal:  domain.Dims{L: item.Size[0], W: item.Size[1], H: item.Size[2]},
			Weight:   item.Weight,
			Rotation: toRotationPolicy(item.Rotation),
			GroupID:  item.GroupID,
		}
	}
	container := domain.ContainerSpec{
		Dims:      domain.Dims{L: in.Container.Size[0], W: in.Container.Size[1], H: in.Container.Size[2]},
		WeightMax: in.Container.Weight,
	}
	return boxes, container
}

func toRotationPolicy(m v1alpha1.RotationMode) domain.RotationPolicy {
	switch m {
	case v1alpha1.RotationModeZ:
		return domain.RotationZAxis
	case v1alpha1.RotationModeFree:
		return domain.RotationFree
	default:
		return domain.RotationNone
	}
}
