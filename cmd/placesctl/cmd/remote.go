package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pstuifzand/placestree/internal/socket"
)

var (
	socketPath string
	visitTitle string
	sessionID  int64
)

var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Send commands to a running placestree",
	Long: `Send commands to a running placestree over its unix socket. Without
--socket the most recently started instance is used.`,
}

var remoteAddCmd = &cobra.Command{
	Use:   "add <uri>",
	Short: "Record a visit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connect()
		if err != nil {
			return err
		}
		resp, err := client.SendAddVisit(args[0], visitTitle, sessionID)
		return report(cmd, resp, err)
	},
}

var remoteRemoveCmd = &cobra.Command{
	Use:   "remove <uri>",
	Short: "Remove every entry for a URI",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connect()
		if err != nil {
			return err
		}
		resp, err := client.SendRemoveURI(args[0])
		return report(cmd, resp, err)
	},
}

var remoteInvalidateCmd = &cobra.Command{
	Use:   "invalidate",
	Short: "Rebuild every row",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connect()
		if err != nil {
			return err
		}
		resp, err := client.SendInvalidate()
		return report(cmd, resp, err)
	},
}

var remoteRowsCmd = &cobra.Command{
	Use:   "rows",
	Short: "Print the rows the viewer shows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := connect()
		if err != nil {
			return err
		}
		rows, err := client.RequestRows()
		if err != nil {
			return err
		}
		for _, row := range rows {
			fmt.Fprintln(cmd.OutOrStdout(), row)
		}
		return nil
	},
}

func connect() (*socket.Client, error) {
	path := socketPath
	if path == "" {
		found, _, err := socket.FindRunningInstance()
		if err != nil {
			return nil, fmt.Errorf("no running placestree instance found: %w", err)
		}
		path = found
	}
	return socket.NewClient(path)
}

func report(cmd *cobra.Command, resp *socket.Response, err error) error {
	if err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}
	if !resp.Success {
		return fmt.Errorf("server error: %s", resp.Message)
	}
	fmt.Fprintln(cmd.OutOrStdout(), resp.Message)
	return nil
}

func init() {
	remoteCmd.PersistentFlags().StringVar(&socketPath, "socket", "", "socket of the instance to talk to")
	remoteAddCmd.Flags().StringVar(&visitTitle, "title", "", "title of the visited page")
	remoteAddCmd.Flags().Int64Var(&sessionID, "session", 0, "session the visit belongs to")

	remoteCmd.AddCommand(remoteAddCmd, remoteRemoveCmd, remoteInvalidateCmd, remoteRowsCmd)
	rootCmd.AddCommand(remoteCmd)
}
