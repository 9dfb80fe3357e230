// Command opcua-browse connects to an OPC UA server and either browses
// a node's children or reads one of its attributes, exercising the
// library's Connect/Browse/Read surface from the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rob-gra/go-opcua/clog"
	"github.com/rob-gra/go-opcua/opcua"
	"github.com/rob-gra/go-opcua/ua"
	"github.com/rob-gra/go-opcua/ua/id"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "opcua-browse:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var addr, endpointURL, username, password string
	var timeout time.Duration

	root := &cobra.Command{
		Use:   "opcua-browse",
		Short: "Browse and read nodes on an OPC UA server",
	}
	root.PersistentFlags().StringVar(&addr, "addr", "localhost:4840", "server host:port")
	root.PersistentFlags().StringVar(&endpointURL, "endpoint", "opc.tcp://localhost:4840", "endpoint URL presented during Hello/GetEndpoints")
	root.PersistentFlags().StringVar(&username, "username", "", "username for UserName identity (anonymous if empty)")
	root.PersistentFlags().StringVar(&password, "password", "", "password for UserName identity")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "per-request timeout")

	connect := func(ctx context.Context) (*opcua.Client, error) {
		cfg := opcua.DefaultConfig()
		cfg.RequestTimeout = timeout
		if username != "" {
			cfg.Identity = opcua.UserNameIdentity{Username: username, Password: password}
		}
		c, err := opcua.NewClient(cfg, clog.Clog{})
		if err != nil {
			return nil, err
		}
		if err := c.Connect(ctx, addr, endpointURL); err != nil {
			return nil, fmt.Errorf("connect: %w", err)
		}
		return c, nil
	}

	root.AddCommand(newBrowseCmd(&connect))
	root.AddCommand(newReadCmd(&connect))
	return root
}

type connectFunc func(ctx context.Context) (*opcua.Client, error)

func newBrowseCmd(connect *connectFunc) *cobra.Command {
	var nodeArg string
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "List the forward references of a node",
		RunE: func(cmd *cobra.Command, args []string) error {
			nodeID, err := parseNodeArg(nodeArg)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			c, err := (*connect)(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			refs, err := c.BrowseChildren(ctx, nodeID)
			if err != nil {
				return fmt.Errorf("browse: %w", err)
			}
			for _, r := range refs {
				fmt.Printf("%s\t%s\t%s\n", r.NodeID.NodeID, r.BrowseName.Name, r.DisplayName.Text)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&nodeArg, "node", "i=85", "NodeId to browse (ns=<n>;i=<id> or i=<id>)")
	return cmd
}

func newReadCmd(connect *connectFunc) *cobra.Command {
	var nodeArg string
	var attr uint32
	cmd := &cobra.Command{
		Use:   "read",
		Short: "Read one attribute of a node",
		RunE: func(cmd *cobra.Command, args []string) error {
			nodeID, err := parseNodeArg(nodeArg)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			c, err := (*connect)(ctx)
			if err != nil {
				return err
			}
			defer c.Close()

			results, err := c.Read(ctx, []*ua.ReadValueID{{NodeID: nodeID, AttributeID: attr}}, ua.TimestampsToReturnBoth)
			if err != nil {
				return fmt.Errorf("read: %w", err)
			}
			v := results[0]
			if !v.HasValue {
				fmt.Printf("status=%s (no value)\n", v.StatusCode)
				return nil
			}
			fmt.Printf("status=%s value=%v\n", v.StatusCode, v.Value.Scalar)
			return nil
		},
	}
	cmd.Flags().StringVar(&nodeArg, "node", fmt.Sprintf("i=%d", id.ServerStatus), "NodeId to read")
	cmd.Flags().Uint32Var(&attr, "attribute", uint32(id.AttributeIDValue), "numeric AttributeId to read")
	return cmd
}

func parseNodeArg(s string) (ua.NodeId, error) {
	n, err := ua.ParseNodeId(s)
	if err != nil {
		return ua.NodeId{}, fmt.Errorf("--node %q: %w", s, err)
	}
	return n, nil
}
