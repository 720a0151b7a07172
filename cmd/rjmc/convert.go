package rjmc

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/robjenks/rjm-pipeline/internal/fsio"
	"github.com/robjenks/rjm-pipeline/pipeline"
	"github.com/robjenks/rjm-pipeline/pipelineconfig"
	"github.com/robjenks/rjm-pipeline/rjmlog"
)

var (
	configPath  string
	sourcePath  string
	destPath    string
	maxWorkers  int
	useParallel bool
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Run a pipeline described by a YAML configuration file against a source asset",
	Run: func(cmd *cobra.Command, args []string) {
		data, err := os.ReadFile(configPath)
		if err != nil {
			logrus.Fatalf("failed to read pipeline config %s: %v", configPath, err)
		}
		cfg, err := pipelineconfig.Parse(data)
		if err != nil {
			logrus.Fatalf("failed to parse pipeline config: %v", err)
		}
		if maxWorkers > 0 {
			cfg.MaxWorkers = maxWorkers
		}

		sink := rjmlog.NewLogrusSink(logrus.StandardLogger())
		p, err := pipelineconfig.Build(cfg, fsio.OS{}, sink)
		if err != nil {
			logrus.Fatalf("failed to build pipeline: %v", err)
		}

		run := p.Execute
		if useParallel {
			run = p.ExecuteParallel
		}
		rs, err := run(pipeline.Source{Path: sourcePath}, destPath)
		if err != nil {
			logrus.Fatalf("pipeline execution failed: %v", err)
		}
		logrus.Infof("conversion complete: %d succeeded, %d failed", rs.Success, rs.Failure)
		for _, e := range rs.Errors {
			logrus.Errorf("  %s", e.Error())
		}
		if rs.Failure > 0 {
			os.Exit(1)
		}
	},
}

func init() {
	convertCmd.Flags().StringVar(&configPath, "config", "", "Path to the pipeline YAML configuration")
	convertCmd.Flags().StringVar(&sourcePath, "in", "", "Path to the source asset")
	convertCmd.Flags().StringVar(&destPath, "out", "", "Path to write the converted asset to")
	convertCmd.Flags().IntVar(&maxWorkers, "max-workers", 0, "Override max_workers from the config (0 = use config value)")
	convertCmd.Flags().BoolVar(&useParallel, "parallel", false, "Process meshes concurrently")
	_ = convertCmd.MarkFlagRequired("config")
	_ = convertCmd.MarkFlagRequired("in")
	_ = convertCmd.MarkFlagRequired("out")
}
