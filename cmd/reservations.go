package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"cinebook-cli/config"
	"cinebook-cli/service"
	"cinebook-cli/store"
)

var reservationsCmd = &cobra.Command{
	Use:   "reservations",
	Short: "List your bookings",
	Long:  `List every booking on your account, newest first`,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := store.LoadSession()
		if err != nil || !session.Authenticated() {
			return errors.New(`not signed in, run "cinebook login" first`)
		}

		cfg := config.Load()
		client := service.NewClient(&http.Client{Timeout: cfg.HTTPTimeout}, cfg.APIBaseURL)
		ctx := context.Background()

		if session.AccessExpired(time.Now()) {
			session, err = client.RefreshSession(ctx, session)
			if err != nil {
				return errors.New(`session expired, run "cinebook login" again`)
			}
			_ = store.SaveSession(session)
		}

		reservations, err := client.ListReservations(ctx, session)
		if err != nil {
			if detail := service.ErrorDetail(err); detail != "" {
				return errors.New(detail)
			}
			return err
		}
		if len(reservations) == 0 {
			fmt.Println("No bookings yet")
			return nil
		}

		sort.Slice(reservations, func(i, j int) bool {
			return reservations[i].CreatedAt.After(reservations[j].CreatedAt)
		})

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Reference", "Movie", "Showtime", "Seats", "Total", "Status"})
		t.SetColumnConfigs([]table.ColumnConfig{
			{Number: 2, WidthMax: 28},
			{Number: 4, WidthMax: 20},
		})
		t.Style().Options.SeparateRows = true

		for _, reservation := range reservations {
			status := "confirmed"
			if reservation.IsCancelled {
				status = "cancelled"
			}
			t.AppendRow(table.Row{
				reservation.BookingReference,
				reservation.Showtime.Movie.Title,
				reservation.Showtime.ShowTime.Format("Mon Jan 2 15:04"),
				strings.Join(reservation.SeatNumbers, ", "),
				fmt.Sprintf("%.2f", reservation.TotalPrice.Float()),
				status,
			})
		}
		t.Render()

		showQR, _ := cmd.Flags().GetBool("qr")
		if !showQR {
			return nil
		}
		for _, reservation := range reservations {
			if reservation.IsCancelled || reservation.BookingReference == "" {
				continue
			}
			code, err := qrcode.New(reservation.BookingReference, qrcode.Medium)
			if err != nil {
				continue
			}
			fmt.Printf("\n%s\n%s", reservation.BookingReference, code.ToSmallString(false))
		}
		return nil
	},
}
