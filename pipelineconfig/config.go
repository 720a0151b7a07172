// Package pipelineconfig loads a declarative pipeline description from
// YAML and builds the corresponding pipeline.Pipeline, in the same spirit
// as the strict (KnownFields(true)) YAML parsing used for workload
// presets elsewhere in this stack.
package pipelineconfig

import (
	"bytes"
	"fmt"

	"github.com/robjenks/rjm-pipeline/internal/fsio"
	"github.com/robjenks/rjm-pipeline/objfmt"
	"github.com/robjenks/rjm-pipeline/pipeline"
	"github.com/robjenks/rjm-pipeline/rjmlog"
	"gopkg.in/yaml.v3"
)

// Config is the top-level YAML document shape.
type Config struct {
	Input      InputConfig        `yaml:"input"`
	Processing []ProcessingConfig `yaml:"processing"`
	Output     OutputConfig       `yaml:"output"`
	MaxWorkers int                `yaml:"max_workers"`
}

// InputConfig selects and configures the InputStage.
type InputConfig struct {
	// Kind is one of "obj" or "binary".
	Kind string `yaml:"kind"`
	// PostProcess names zero or more objfmt.PostProcess flags for an
	// "obj" input: "triangulate", "generate_normals", "calc_tangent_space",
	// "join_identical_vertices".
	PostProcess []string `yaml:"post_process"`
	// Identifier, for a "binary" input, is verified against the file's
	// leading bytes.
	Identifier string `yaml:"identifier"`
}

// OutputConfig selects and configures the OutputStage.
type OutputConfig struct {
	// Kind is one of "obj" or "binary". An empty Kind sets no OutputStage,
	// so Build fails with pipeline.ErrMissingStage.
	Kind string `yaml:"kind"`
	// MaterialTextureName, for an "obj" output, drives the mtllib/usemtl
	// references and sibling .mtl file.
	MaterialTextureName string `yaml:"material_texture_name"`
	Identifier          string `yaml:"identifier"`
}

// ProcessingConfig names one ProcessingStage and its options.
type ProcessingConfig struct {
	// Kind is one of "centre", "unit_scale", "direct_postprocess",
	// "importer_postprocess", "model_info", "passthrough".
	Kind string `yaml:"kind"`
	// DirectPostprocessOptions names zero or more
	// pipeline.DirectPostprocessOption flags: "invert_u", "invert_v",
	// "custom_transform".
	DirectPostprocessOptions []string `yaml:"direct_postprocess_options"`
	// PostProcess, for "importer_postprocess", names objfmt.PostProcess
	// flags using the same vocabulary as InputConfig.PostProcess.
	PostProcess []string `yaml:"post_process"`
}

// Parse decodes data as a Config, rejecting unknown fields.
func Parse(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("pipelineconfig: parse: %w", err)
	}
	return cfg, nil
}

// Build assembles a pipeline.Pipeline from cfg, using fs and log as the
// pipeline's filesystem and logging collaborators.
func Build(cfg Config, fs fsio.FileSystem, log rjmlog.Sink) (*pipeline.Pipeline, error) {
	b := pipeline.NewPipelineBuilder().WithFileSystem(fs).WithLog(log)

	input, err := buildInput(cfg.Input)
	if err != nil {
		return nil, err
	}
	b.WithInput(input)

	for _, pc := range cfg.Processing {
		stage, err := buildProcessing(pc)
		if err != nil {
			return nil, err
		}
		b.WithProcessing(stage)
	}

	output, err := buildOutput(cfg.Output)
	if err != nil {
		return nil, err
	}
	b.WithOutput(output)

	if cfg.MaxWorkers > 0 {
		b.WithMaxWorkers(cfg.MaxWorkers)
	}
	return b.Build()
}

func buildInput(c InputConfig) (pipeline.InputStage, error) {
	switch c.Kind {
	case "obj":
		flags, err := parsePostProcess(c.PostProcess)
		if err != nil {
			return nil, err
		}
		return pipeline.ObjImporterInput{PostProcess: flags}, nil
	case "binary":
		return pipeline.BinaryInput{Identifier: []byte(c.Identifier)}, nil
	default:
		return nil, fmt.Errorf("pipelineconfig: unknown input kind %q", c.Kind)
	}
}

func buildOutput(c OutputConfig) (pipeline.OutputStage, error) {
	switch c.Kind {
	case "obj":
		return pipeline.ObjOutput{MaterialTextureName: c.MaterialTextureName}, nil
	case "binary":
		return pipeline.BinaryOutput{Identifier: []byte(c.Identifier)}, nil
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("pipelineconfig: unknown output kind %q", c.Kind)
	}
}

func buildProcessing(c ProcessingConfig) (pipeline.ProcessingStage, error) {
	switch c.Kind {
	case "centre":
		return pipeline.CentreStage{}, nil
	case "unit_scale":
		return pipeline.UnitScaleStage{}, nil
	case "direct_postprocess":
		opts, err := parseDirectPostprocessOptions(c.DirectPostprocessOptions)
		if err != nil {
			return nil, err
		}
		return pipeline.DirectPostprocessStage{Options: opts}, nil
	case "importer_postprocess":
		flags, err := parsePostProcess(c.PostProcess)
		if err != nil {
			return nil, err
		}
		return pipeline.ImporterPostprocessStage{PostProcess: flags}, nil
	case "model_info":
		return pipeline.OutputModelInfoStage{}, nil
	case "passthrough", "":
		return pipeline.PassthroughStage{}, nil
	default:
		return nil, fmt.Errorf("pipelineconfig: unknown processing kind %q", c.Kind)
	}
}

func parsePostProcess(names []string) (objfmt.PostProcess, error) {
	var flags objfmt.PostProcess
	for _, n := range names {
		switch n {
		case "triangulate":
			flags |= objfmt.Triangulate
		case "generate_normals":
			flags |= objfmt.GenerateNormals
		case "calc_tangent_space":
			flags |= objfmt.CalcTangentSpace
		case "join_identical_vertices":
			flags |= objfmt.JoinIdenticalVertices
		default:
			return 0, fmt.Errorf("pipelineconfig: unknown post_process flag %q", n)
		}
	}
	return flags, nil
}

func parseDirectPostprocessOptions(names []string) (pipeline.DirectPostprocessOption, error) {
	var opts pipeline.DirectPostprocessOption
	for _, n := range names {
		switch n {
		case "invert_u":
			opts |= pipeline.InvertU
		case "invert_v":
			opts |= pipeline.InvertV
		case "custom_transform":
			opts |= pipeline.CustomTransform
		default:
			return 0, fmt.Errorf("pipelineconfig: unknown direct_postprocess_options flag %q", n)
		}
	}
	return opts, nil
}
