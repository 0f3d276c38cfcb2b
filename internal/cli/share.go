package cli

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mrz1836/timelapse/internal/course"
	"github.com/mrz1836/timelapse/internal/errors"
)

// AddShareCommand adds the share command group to the root command.
func AddShareCommand(root *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "share",
		Short: "Convert courses to and from share codes",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "encode <course.yaml>",
		Short: "Print the share code for a course file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShareEncode(cmd, args[0], cmd.OutOrStdout())
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "decode <code>",
		Short: "Print the course a share code contains",
		Long: `Decode a share code and print the course as YAML, ready to save
as a course file. With -o json the course is printed as JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShareDecode(cmd, args[0], cmd.OutOrStdout())
		},
	})

	root.AddCommand(cmd)
}

func runShareEncode(cmd *cobra.Command, path string, w io.Writer) error {
	c, err := course.Load(path)
	if err != nil {
		return err
	}
	code, err := course.EncodeShare(c)
	if err != nil {
		return err
	}
	logger := GetLogger()
	logger.Debug().Str("course", c.Name).Int("length", len(code)).Msg("share code encoded")

	if cmd.Flag("output").Value.String() == OutputJSON {
		return json.NewEncoder(w).Encode(map[string]string{"name": c.Name, "code": code})
	}
	_, err = fmt.Fprintln(w, code)
	return err
}

func runShareDecode(cmd *cobra.Command, code string, w io.Writer) error {
	c, err := course.DecodeShare(code)
	if err != nil {
		return err
	}

	if cmd.Flag("output").Value.String() == OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to render course")
	}
	_, err = w.Write(data)
	return err
}
