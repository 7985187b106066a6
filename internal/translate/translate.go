// Package translate runs the encoder and decoder over whole meshes.
//
// Attributes fail one at a time: a rejected channel is logged, its reason
// is kept in the returned error and the remaining channels still translate.
package translate

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/meshattr/internal/config"
	"github.com/Faultbox/meshattr/internal/logger"
	"github.com/Faultbox/meshattr/pkg/attr"
	"github.com/Faultbox/meshattr/pkg/decode"
	"github.com/Faultbox/meshattr/pkg/encode"
	"github.com/Faultbox/meshattr/pkg/formats"
	"github.com/Faultbox/meshattr/pkg/host"
)

// KindFor negotiates the requested kind of a channel. Unknown kind names
// fall back to default_kind, then to float3.
func KindFor(name string, cfg config.TranslateConfig) attr.Kind {
	want := cfg.DefaultKind
	switch name {
	case formats.UVChannel:
		want = cfg.UVKind
	case formats.ColorChannel:
		want = cfg.ColorKind
	}
	if k, ok := attr.ParseKind(want); ok {
		return k
	}
	if k, ok := attr.ParseKind(cfg.DefaultKind); ok {
		return k
	}
	return attr.KindFloat3
}

// EncodeAll encodes the normals channel (when enabled) and every selected
// named channel of mesh. The returned error aggregates the skipped channels;
// the attributes that did encode are returned either way.
func EncodeAll(mesh *host.Mesh, cfg config.TranslateConfig) ([]*attr.Attribute, error) {
	var (
		out  []*attr.Attribute
		errs error
	)

	if cfg.Normals && mesh.Normals != nil {
		a, err := encode.EncodeNormals(mesh.Normals, mesh, cfg.Animated, mesh.Mirrored)
		if err != nil {
			errs = multierr.Append(errs, skip(mesh, host.NormalsName, err))
		} else {
			out = append(out, a)
		}
	}

	for _, name := range mesh.ChannelNames() {
		if !cfg.Selected(name) {
			continue
		}
		a, err := encode.Encode(mesh.Channel(name), mesh, encode.Options{
			Kind:       KindFor(name, cfg),
			Animated:   cfg.Animated,
			AutoExpand: cfg.AutoExpand,
			Epsilon:    cfg.Epsilon,
			Mirror:     mesh.Mirrored,
		})
		if err != nil {
			errs = multierr.Append(errs, skip(mesh, name, err))
			continue
		}
		out = append(out, a)
	}

	logger.Debug("encoded mesh",
		zap.String("mesh", mesh.Name),
		zap.Int("attributes", len(out)),
		zap.Int("skipped", len(multierr.Errors(errs))))
	return out, errs
}

// DecodeAll installs every selected attribute into mesh and returns the
// aggregated reasons for the ones it skipped.
func DecodeAll(mesh *host.Mesh, attrs []*attr.Attribute, cfg config.TranslateConfig) error {
	var errs error
	decoded := 0
	for _, a := range attrs {
		if a.Name == host.NormalsName {
			if !cfg.Normals {
				continue
			}
		} else if !cfg.Selected(a.Name) {
			continue
		}
		if err := decode.Decode(mesh, a); err != nil {
			errs = multierr.Append(errs, skip(mesh, a.Name, err))
			continue
		}
		decoded++
	}

	logger.Debug("decoded mesh",
		zap.String("mesh", mesh.Name),
		zap.Int("attributes", decoded),
		zap.Int("skipped", len(multierr.Errors(errs))))
	return errs
}

func skip(mesh *host.Mesh, name string, err error) error {
	logger.Warn("skipping attribute",
		zap.String("mesh", mesh.Name),
		zap.String("attribute", name),
		zap.Error(err))
	return err
}
