package commands

import (
	"strings"

	"github.com/penwyp/go-jobflow/internal/core/model"
	"github.com/penwyp/go-jobflow/internal/presentation/formatter"
	"github.com/penwyp/go-jobflow/internal/util"
	"github.com/spf13/cobra"
)

var notificationChannel string

var notificationsCmd = &cobra.Command{
	Use:     "notifications",
	Aliases: []string{"alerts"},
	Short:   "Show recent Slack alerts and channel routing",
	Args:    cobra.NoArgs,
	RunE:    runNotifications,
}

func init() {
	rootCmd.AddCommand(notificationsCmd)

	notificationsCmd.Flags().StringVar(&notificationChannel, "channel", "",
		"Only alerts sent to this channel (e.g. #project-alerts)")
}

func runNotifications(cmd *cobra.Command, args []string) error {
	var alerts []model.Notification
	for _, n := range app.store.Notifications() {
		if notificationChannel != "" && n.Channel != notificationChannel {
			continue
		}
		alerts = append(alerts, n)
	}
	channels := app.store.SlackChannels()

	if app.isJSON() {
		return formatter.WriteJSON(app.out, struct {
			Alerts   []model.Notification `json:"recentAlerts"`
			Channels []model.SlackChannel `json:"slackChannels"`
		}{alerts, channels})
	}

	now := app.clock.Now()
	alertTable := &formatter.Table{
		Headers: []string{"When", "Type", "Title", "Channel", "Project", "Status"},
	}
	for _, n := range alerts {
		alertTable.AddRow(util.TimeAgo(n.Timestamp, now), util.Humanize(n.Type), n.Title,
			n.Channel, n.ProjectName, n.Status)
	}
	if err := app.render(alertTable, nil); err != nil {
		return err
	}
	if app.cfg.Output != "table" {
		return nil
	}

	app.note("")
	channelTable := &formatter.Table{
		Headers: []string{"Channel", "Active", "Alert types"},
	}
	active := 0
	for _, c := range channels {
		state := "off"
		if c.Active {
			state = "on"
			active++
		}
		types := make([]string, len(c.AlertTypes))
		for i, t := range c.AlertTypes {
			types[i] = util.Humanize(t)
		}
		channelTable.AddRow(c.Name, state, strings.Join(types, ", "))
	}
	if err := app.render(channelTable, nil); err != nil {
		return err
	}
	app.note("%d of %d channels active", active, len(channels))
	return nil
}
