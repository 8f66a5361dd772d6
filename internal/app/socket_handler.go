package app

import (
	"fmt"
	"log"

	"github.com/pstuifzand/placestree/internal/model"
	"github.com/pstuifzand/placestree/internal/socket"
)

// handleSocketMessage applies a command received over the unix socket.
// It runs on the UI goroutine like every other change to the result.
func (a *App) handleSocketMessage(msg socket.Message) {
	log.Printf("Received socket message: command=%s, uri=%s", msg.Command, msg.URI)

	switch msg.Command {
	case socket.CommandAddVisit:
		a.handleAddVisit(msg)
	case socket.CommandRemoveURI:
		removed := a.result.RemoveURI(msg.URI)
		log.Printf("Removed %d items with uri %s", removed, msg.URI)
		a.SetStatus("Removed %d items", removed)
	case socket.CommandInvalidate:
		a.result.Invalidate()
		a.SetStatus("Rebuilt %d rows", a.view.RowCount())
	case socket.CommandRows:
		rows := make([]string, a.view.RowCount())
		for row := range rows {
			rows[row] = a.tree.RowText(row)
		}
		msg.Reply(&socket.Response{Success: true, Message: fmt.Sprintf("%d rows", len(rows)), Rows: rows})
	default:
		log.Printf("Unknown socket command: %s", msg.Command)
		msg.Reply(&socket.Response{Success: false, Message: "Unknown command: " + msg.Command})
	}
}

// handleAddVisit appends a visit under the root of the result
func (a *App) handleAddVisit(msg socket.Message) {
	root := a.result.RootItem()
	visit := model.NewVisit(msg.URI, msg.Title, a.now(), msg.SessionID)
	if _, err := a.result.AppendChild(root, visit); err != nil {
		log.Printf("Failed to add visit %s: %v", msg.URI, err)
		a.SetStatus("Error adding visit: %v", err)
		return
	}
	log.Printf("Added visit %s, tree now shows %d rows", msg.URI, a.view.RowCount())
	a.SetStatus("Added %s", msg.URI)
}
