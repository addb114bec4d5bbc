// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/consensys/go-bvbounds/pkg/config"
	"github.com/consensys/go-bvbounds/pkg/expr"
	"github.com/consensys/go-bvbounds/pkg/tactic"
	"github.com/consensys/go-bvbounds/pkg/util"
	"github.com/consensys/go-bvbounds/pkg/util/source"
	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// simplifyCmd represents the simplify command
var simplifyCmd = &cobra.Command{
	Use:   "simplify [flags] file...",
	Short: "Simplify the assertions of one or more scripts.",
	Long: `Simplify the assertions of one or more SMT-LIB style scripts, and print
	the resulting scripts.  Each assertion is simplified knowing that those
	before it hold.`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		//
		opts := simplifyOptions{
			stats:  getFlag(cmd, "stats"),
			config: cfg.Simplify,
		}
		//
		return simplifyFiles(cmd.OutOrStdout(), opts, args...)
	},
}

// simplifyOptions captures the settings for the simplify command.
type simplifyOptions struct {
	// Report statistics for each file
	stats bool
	// Limits on the simplification
	config config.SimplifyConfig
}

// Simplify each of the given files in turn, writing the simplified scripts to
// a given writer.  Syntax errors are reported on the same writer, and
// processing continues with the next file.
func simplifyFiles(out io.Writer, opts simplifyOptions, filenames ...string) error {
	var (
		failed    bool
		prototype = tactic.NewBoundsTactic(expr.NewManager(), opts.config)
	)
	//
	files, err := source.ReadFiles(filenames...)
	if err != nil {
		return err
	}
	//
	for i, srcfile := range files {
		if i != 0 {
			fmt.Fprintln(out)
		}
		// Each file gets its own terms and its own tactic.
		m := expr.NewManager()
		//
		if !simplifyFile(out, srcfile, prototype.Translate(m), m, opts) {
			failed = true
		}
	}
	//
	if failed {
		return errors.New("syntax error(s) encountered")
	}
	//
	return nil
}

func simplifyFile(out io.Writer, srcfile *source.File, simplifier *tactic.Tactic, m *expr.Manager,
	opts simplifyOptions) bool {
	//
	stats := util.NewPerfStats()
	//
	script, errs := expr.ParseScript(m, srcfile)
	if len(errs) > 0 {
		for _, err := range errs {
			printSyntaxError(out, &err)
		}
		//
		return false
	}
	//
	goal := simplifier.Apply(script.Assertions)
	// Print declarations
	for _, c := range script.Declarations {
		fmt.Fprintf(out, "(declare-const %s %s)\n", c.Name(), c.Sort().String())
	}
	// Print assertions, highlighting those which were rewritten.
	rewritten := color.New(color.FgGreen)
	//
	for _, f := range goal {
		if slices.Contains(script.Assertions, f) {
			fmt.Fprintf(out, "(assert %s)\n", f.String())
		} else {
			rewritten.Fprintf(out, "(assert %s)\n", f.String())
		}
	}
	//
	if opts.stats {
		fmt.Fprintf(out, "; %d assertion(s) simplified to %d (%s)\n", len(script.Assertions), len(goal),
			simplifier.Stats().String())
	}
	//
	stats.Log(fmt.Sprintf("Simplifying %s", srcfile.Filename()))
	//
	if log.IsLevelEnabled(log.DebugLevel) {
		log.Debugf("%s: %d terms constructed", srcfile.Filename(), m.Size())
	}
	//
	return true
}

func init() {
	rootCmd.AddCommand(simplifyCmd)
	simplifyCmd.Flags().Bool("stats", false, "report statistics for each file")
}
