package sheetsclient

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// RosterTabTitle returns the tab a roster month is published to, e.g. "Roster 2026-02"
func RosterTabTitle(year, month int) string {
	return fmt.Sprintf("Roster %04d-%02d", year, month)
}

// PublishRoster writes rows to the named tab, creating the tab if needed.
// An existing tab is cleared first so a regenerated roster fully replaces the old one.
func (c *Client) PublishRoster(ctx context.Context, spreadsheetID, tabTitle string, rows [][]string) error {
	exists, err := c.HasSheet(ctx, spreadsheetID, tabTitle)
	if err != nil {
		return err
	}

	if exists {
		c.logger.Debug("Clearing existing roster tab", zap.String("tab", tabTitle))
		if err := c.ClearValues(ctx, spreadsheetID, quoteTab(tabTitle)); err != nil {
			return fmt.Errorf("failed to clear tab: %w", err)
		}
	} else {
		c.logger.Debug("Creating roster tab", zap.String("tab", tabTitle))
		if _, err := c.CreateSheet(ctx, spreadsheetID, tabTitle); err != nil {
			return fmt.Errorf("failed to create tab: %w", err)
		}
	}

	if err := c.UpdateValues(ctx, spreadsheetID, quoteTab(tabTitle)+"!A1", toValues(rows)); err != nil {
		return fmt.Errorf("failed to write roster: %w", err)
	}

	c.logger.Info("Published roster",
		zap.String("tab", tabTitle),
		zap.Int("rows", len(rows)))

	return nil
}

// quoteTab quotes a tab title for use in A1 notation
func quoteTab(title string) string {
	return "'" + title + "'"
}

// toValues converts string rows into the cell values the Sheets API expects
func toValues(rows [][]string) [][]interface{} {
	values := make([][]interface{}, len(rows))
	for i, row := range rows {
		values[i] = make([]interface{}, len(row))
		for j, cell := range row {
			values[i][j] = cell
		}
	}
	return values
}
