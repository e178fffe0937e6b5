// SPDX-FileCopyrightText: 2020 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"k8s.io/klog/v2"

	"github.com/textforge/hyperlinks/cmd/configuration"
	"github.com/textforge/hyperlinks/pkg/renderer"
	"github.com/textforge/hyperlinks/pkg/version"
)

var vip = viper.New()

// Options is the effective configuration of one run, unmarshaled from the
// flags bound to vip with the configuration file values as defaults.
type Options struct {
	OnlyLinks   bool   `mapstructure:"only-links"`
	RenderLinks bool   `mapstructure:"render-links"`
	Output      string `mapstructure:"output"`
}

// NewCommand creates the root command.
func NewCommand(ctx context.Context) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hyperlinks [FILE...]",
		Short: "Render source text with markup hyperlinks as HTML",
		Long: `Reads UTF-8 text from standard input or the given files (- means stdin) and
writes an HTML document to standard output in which every input byte appears
verbatim while Markdown, reStructuredText, Asciidoc and HTML hyperlinks
become clickable anchors. Label references are resolved against the link
reference definitions found anywhere in the same input.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if printVersion, _ := cmd.Flags().GetBool("version"); printVersion {
				fmt.Fprintln(cmd.OutOrStdout(), version.Version)
				return nil
			}
			options := NewOptions(new(configuration.DefaultLoader))
			return run(options, args)
		},
	}

	configureFlags(cmd)

	cmd.AddCommand(NewVersionCmd())

	klog.InitFlags(nil)
	AddFlags(cmd)

	return cmd
}

// configureFlags configures flags for command
func configureFlags(command *cobra.Command) {
	command.Flags().BoolP("only-links", "l", false,
		"Print only the links, one destination TAB text TAB title line each.")
	_ = vip.BindPFlag("only-links", command.Flags().Lookup("only-links"))

	command.Flags().BoolP("render-links", "r", false,
		"Render anchors with the link text instead of the raw source span.")
	_ = vip.BindPFlag("render-links", command.Flags().Lookup("render-links"))

	command.Flags().StringP("output", "o", "",
		"Write the result to FILE instead of standard output.")
	_ = vip.BindPFlag("output", command.Flags().Lookup("output"))

	command.Flags().BoolP("version", "V", false,
		"Print the version and exit.")
}

// AddFlags adds go flags to rootCmd
func AddFlags(rootCmd *cobra.Command) {
	flag.CommandLine.VisitAll(func(gf *flag.Flag) {
		rootCmd.Flags().AddGoFlag(gf)
	})
}

// NewOptions creates an Options object from the flags bound to vip. The
// configuration file values enter vip as defaults, so flags that were set
// explicitly overwrite them.
func NewOptions(loader configuration.Loader) *Options {
	config, err := loader.Load()
	if err != nil {
		klog.Warningf("skipping configuration file: %v", err)
		config = &configuration.Config{}
	}
	vip.SetDefault("only-links", config.OnlyLinks)
	vip.SetDefault("render-links", config.RenderLinks)
	vip.SetDefault("output", config.Output)

	options := &Options{}
	if err := vip.Unmarshal(options); err != nil {
		klog.Warningf("reading flags: %v", err)
	}
	return options
}

func run(o *Options, inputs []string) error {
	out := io.Writer(os.Stdout)
	if o.Output != "" {
		f, err := os.Create(o.Output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	render := renderFunc(o)

	if len(inputs) == 0 || (len(inputs) == 1 && inputs[0] == "-") {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		return render(out, string(data))
	}

	var errs *multierror.Error
	for _, name := range inputs {
		var data []byte
		var err error
		if name == "-" {
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(name)
		}
		if err != nil {
			errs = multierror.Append(errs, err)
			continue
		}
		if err := render(out, string(data)); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("rendering %s: %v", name, err))
		}
	}
	return errs.ErrorOrNil()
}

func renderFunc(o *Options) func(io.Writer, string) error {
	switch {
	case o.OnlyLinks:
		return renderer.LinkList
	case o.RenderLinks:
		return renderer.TextLinks2HTMLWriter
	default:
		return renderer.TextRawLinks2HTMLWriter
	}
}
