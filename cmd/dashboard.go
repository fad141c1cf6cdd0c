package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jekabolt/retail-dashboard/app"
	"github.com/jekabolt/retail-dashboard/config"
	"github.com/jekabolt/retail-dashboard/internal/apisrv/auth"
	"github.com/jekabolt/retail-dashboard/internal/dto"
	"github.com/jekabolt/retail-dashboard/log"
	"github.com/spf13/cobra"
)

var (
	dashboardCmd = &cobra.Command{
		Use:   "dashboard",
		Short: "Print the orders dashboard for a date range as JSON",
		RunE:  runDashboard,
	}

	tokenSubject string

	tokenCmd = &cobra.Command{
		Use:   "token",
		Short: "Issue an admin API token signed with the configured secret",
		RunE:  runToken,
	}
)

func init() {
	addRangeFlags(dashboardCmd)

	tokenCmd.Flags().StringVar(&tokenSubject, "sub", "", "operator name stored in the token subject")
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("cannot load a config %v", err.Error())
	}
	log.SetDefault(&cfg.Logger)
	ctx := context.Background()

	a := app.New(cfg)
	if err := a.Init(ctx); err != nil {
		return err
	}
	defer a.Stop(ctx)

	d := a.Dashboard()
	from, to, err := dashboardRange(cmd, d.Location())
	if err != nil {
		return err
	}
	res, err := d.GetOrdersDashboard(ctx, from, to)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(dto.ConvertEntityOrdersDashboardToDto(res, strings.ToUpper(cfg.Rates.BaseCurrency)))
}

func addRangeFlags(cmd *cobra.Command) {
	cmd.Flags().String("from", "", "range start, YYYY-MM-DD or RFC 3339")
	cmd.Flags().String("to", "", "range end, YYYY-MM-DD or RFC 3339")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
}

// dashboardRange reads --from and --to in loc. A bare --to covers its whole day.
func dashboardRange(cmd *cobra.Command, loc *time.Location) (time.Time, time.Time, error) {
	from, err := cmd.Flags().GetString("from")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := cmd.Flags().GetString("to")
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return dto.ParseDateRange(from, to, loc)
}

func runToken(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("cannot load a config %v", err.Error())
	}
	authS, err := auth.New(&cfg.Auth)
	if err != nil {
		return err
	}
	token, err := authS.IssueToken(tokenSubject)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
