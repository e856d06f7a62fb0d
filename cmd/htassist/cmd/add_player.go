package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"htassist/lib/hattrick"
	"htassist/lib/prompt"
	"htassist/lib/scrapers/hattrick/core"
	"htassist/lib/scrapers/hattrick/view"
	"htassist/lib/telemetry"
	"htassist/lib/timezone"
	"htassist/services/monitor"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type addPlayerFlags struct {
	name          string
	source        string
	stars         float64
	reservePrice  float64
	buyPrice      float64
	arrival       string
	age           string
	tsi           int
	sellBasePrice int
}

var addPlayer addPlayerFlags

func init() {
	rootCmd.AddCommand(addPlayerCmd)
	addPlayer.register(addPlayerCmd.Flags())
	addPlayerCmd.MarkFlagRequired("name")
}

func (f *addPlayerFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.name, "name", "n", "", "the new player's full name")
	fs.StringVarP(&f.source, "source", "o", "", "the new player's source, one of "+sourceChoices())
	fs.Float64VarP(&f.stars, "stars", "x", 0, "the new player's star rating")
	fs.Float64VarP(&f.reservePrice, "reserve-price", "R", 0, "the player's initial auction price")
	fs.Float64VarP(&f.buyPrice, "buy-price", "b", 0, "the player's final auction price")
	fs.StringVarP(&f.arrival, "arrival", "a", "", fmt.Sprintf("the player's arrival date in '%s' format", hattrick.ArrivalFormat))
	fs.StringVarP(&f.age, "age", "A", "", fmt.Sprintf("the player's age at arrival in '%s' format", hattrick.AgeFormat))
	fs.IntVarP(&f.tsi, "tsi", "t", 0, "the player's TSI at arrival")
	fs.IntVarP(&f.sellBasePrice, "sell-base-price", "S", 0, "the player's estimated average market value at arrival")
}

func sourceChoices() string {
	names := make([]string, len(hattrick.Sources()))
	for i, s := range hattrick.Sources() {
		names[i] = string(s)
	}
	return strings.Join(names, "/")
}

func parseArrival(s string) (time.Time, error) {
	return time.ParseInLocation(hattrick.ArrivalFormat, s, timezone.Location)
}

func parseNumber(s string) (float64, error) {
	value, err := strconv.ParseFloat(strings.ReplaceAll(s, " ", ""), 64)
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, fmt.Errorf("%v is negative", value)
	}
	return value, nil
}

// extraInfo takes the extras given on the command line and asks for the
// missing ones.
func extraInfo(ctx context.Context, p *prompt.Prompter, fs *pflag.FlagSet, f addPlayerFlags) (hattrick.ExtraInfo, error) {
	var extra hattrick.ExtraInfo
	var err error

	if fs.Changed("source") {
		extra.Source, err = hattrick.ParseSource(f.source)
	} else {
		extra.Source, err = prompt.Ask(ctx, p, "source", sourceChoices(), hattrick.ParseSource)
	}
	if err != nil {
		return hattrick.ExtraInfo{}, err
	}

	numbers := []struct {
		flag   string
		name   string
		given  float64
		target *float64
	}{
		{"stars", "stars", f.stars, &extra.Stars},
		{"reserve-price", "reserve price", f.reservePrice, &extra.ReservePrice},
		{"buy-price", "buy price", f.buyPrice, &extra.BuyPrice},
	}
	for _, n := range numbers {
		if fs.Changed(n.flag) {
			*n.target = n.given
			continue
		}
		*n.target, err = prompt.Ask(ctx, p, n.name, "number", parseNumber)
		if err != nil {
			return hattrick.ExtraInfo{}, err
		}
	}

	if fs.Changed("arrival") {
		extra.Arrival, err = parseArrival(f.arrival)
	} else {
		extra.Arrival, err = prompt.Ask(ctx, p, "arrival", hattrick.ArrivalFormat, parseArrival)
	}
	if err != nil {
		return hattrick.ExtraInfo{}, err
	}
	return extra, nil
}

// addPlayerRequest builds the request, the arrival values replace the
// scraped ones only when they were given.
func addPlayerRequest(ctx context.Context, p *prompt.Prompter, fs *pflag.FlagSet, f addPlayerFlags) (monitor.AddPlayerRequest, error) {
	extra, err := extraInfo(ctx, p, fs, f)
	if err != nil {
		return monitor.AddPlayerRequest{}, err
	}
	req := monitor.AddPlayerRequest{Name: f.name, Extra: extra}
	if fs.Changed("age") {
		age, err := hattrick.ParseAge(f.age)
		if err != nil {
			return monitor.AddPlayerRequest{}, err
		}
		req.Age = &age
	}
	if fs.Changed("tsi") {
		tsi := f.tsi
		req.TSI = &tsi
	}
	if fs.Changed("sell-base-price") {
		price := f.sellBasePrice
		req.SellBasePrice = &price
	}
	return req, nil
}

var addPlayerCmd = &cobra.Command{
	Use:   "add-player",
	Short: "Starts monitoring a newly arrived player.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		req, err := addPlayerRequest(ctx, prompter, cmd.Flags(), addPlayer)
		if err != nil {
			return err
		}

		store, database, err := openLedger(ctx, config, flags.readOnly)
		if err != nil {
			return err
		}
		defer database.Close()
		service := monitor.NewService(store, telemetry.SlogAPI{})

		var player hattrick.Player
		err = core.WithSession(ctx, clientOptions(config, flags.verbose), func(ctx context.Context, client *core.Client) error {
			var err error
			player, err = service.AddPlayer(ctx, view.NewClient(client), req)
			return err
		})
		if err != nil {
			return err
		}
		monitor.PlayersReport(cmd.OutOrStdout(), []hattrick.Player{player})
		return nil
	},
}
