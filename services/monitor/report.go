package monitor

import (
	"io"

	"htassist/lib/hattrick"
	"htassist/services/ledger"

	"github.com/jedib0t/go-pretty/v6/table"
)

func nationalMark(status hattrick.NationalStatus) string {
	switch {
	case status.Player:
		return "NT"
	case status.Prospect:
		return "NTP"
	}
	return ""
}

// Report renders the outcome of an update.
func Report(w io.Writer, summary Summary) {
	team := table.NewWriter()
	team.SetOutputMirror(w)
	team.AppendHeader(table.Row{"Team", "Date", "Total", "Board reserves"})
	team.AppendRow(table.Row{
		summary.Team.Name,
		summary.Time.Format(hattrick.ArrivalFormat),
		summary.Team.Finance.Total,
		summary.Team.Finance.BoardReserves,
	})
	team.SetStyle(table.StyleRounded)
	team.Render()

	if len(summary.Players) == 0 {
		return
	}
	PlayersReport(w, summary.Players)
}

// PlayersReport renders a line per player.
func PlayersReport(w io.Writer, players []hattrick.Player) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{
		"Name", "Age", "TSI", "Form", "Stamina",
		"PM", "WI", "PS", "SC", "Spec", "National", "Sell base price",
	})
	for _, p := range players {
		t.AppendRow(table.Row{
			p.Name, p.Age.String(), p.TSI, p.Ability.Form, p.Ability.Stamina,
			p.Skills.Playmaking, p.Skills.Winger, p.Skills.Passing, p.Skills.Scoring,
			p.Skills.Speciality, nationalMark(p.Status), p.SellBasePrice,
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// EntriesReport renders the players of the ledger.
func EntriesReport(w io.Writer, entries []ledger.Entry) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Name", "Source", "Stars", "Reserve price", "Buy price", "Arrival", "Sold"})
	for _, e := range entries {
		sold := ""
		if e.IsSold() {
			sold = e.Sold.Format(hattrick.ArrivalFormat)
		}
		t.AppendRow(table.Row{
			e.Name, string(e.Extra.Source), e.Extra.Stars,
			e.Extra.ReservePrice, e.Extra.BuyPrice,
			e.Extra.Arrival.Format(hattrick.ArrivalFormat), sold,
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

// HistoryReport renders the snapshots of a single player, oldest first.
func HistoryReport(w io.Writer, snapshots []ledger.PlayerSnapshot) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Date", "Age", "TSI", "Form", "Stamina", "PM", "WI", "PS", "SC", "National", "Sell base price"})
	for _, s := range snapshots {
		p := s.Player
		t.AppendRow(table.Row{
			s.Time.Format(hattrick.ArrivalFormat), p.Age.String(), p.TSI,
			p.Ability.Form, p.Ability.Stamina,
			p.Skills.Playmaking, p.Skills.Winger, p.Skills.Passing, p.Skills.Scoring,
			nationalMark(p.Status), p.SellBasePrice,
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}
