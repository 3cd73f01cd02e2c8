package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MKhiriev/go-accounts/models"
)

// RenderUsers renders users as a bordered table, one row per account.
func RenderUsers(users []models.PublicUser) string {
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			u.ID,
			u.Email,
			valueOrNA(u.Name),
			yesNo(u.IsAdm),
			formatTime(u.CreatedOn),
			formatTime(u.UpdatedOn),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("UUID", "EMAIL", "NAME", "ADMIN", "CREATED", "UPDATED").
		Rows(rows...)

	return t.Render()
}

// RenderUser renders a single account as label/value lines. Additional
// profile fields follow the fixed ones in key order.
func RenderUser(user models.PublicUser) string {
	var b strings.Builder

	line := func(label, value string) {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteString("\n")
	}

	line("uuid", user.ID)
	line("email", user.Email)
	line("name", valueOrNA(user.Name))
	line("isAdm", yesNo(user.IsAdm))
	line("createdOn", formatTime(user.CreatedOn))
	line("updatedOn", formatTime(user.UpdatedOn))

	extraKeys := make([]string, 0, len(user.Extra))
	for k := range user.Extra {
		extraKeys = append(extraKeys, k)
	}
	sort.Strings(extraKeys)
	for _, k := range extraKeys {
		line(k, fmt.Sprint(user.Extra[k]))
	}

	return b.String()
}

// RenderHealth renders the server status and build information.
func RenderHealth(health models.HealthResponse) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("go-accounts server"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("status"))
	b.WriteString(valueOrNA(health.Status))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("version"))
	b.WriteString(valueOrNA(health.Version))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("date"))
	b.WriteString(valueOrNA(health.BuildDate))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("commit"))
	b.WriteString(valueOrNA(health.BuildCommit))
	b.WriteString("\n")

	return b.String()
}

func valueOrNA(v string) string {
	v = strings.TrimSpace(v)
	if v == "" {
		return "N/A"
	}
	return v
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format(time.RFC3339)
}
