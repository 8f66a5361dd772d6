package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/pstuifzand/placestree/internal/app"
	"github.com/pstuifzand/placestree/internal/config"
	"github.com/pstuifzand/placestree/internal/debug"
	"github.com/pstuifzand/placestree/internal/openstate"
	"github.com/pstuifzand/placestree/internal/socket"
)

func main() {
	logFile, err := os.Create("placestree.log")
	if err != nil {
		log.Fatal(err)
	}
	defer logFile.Close()
	log.SetOutput(logFile)
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	debug.SetOutput(logFile)

	debugMode := flag.Bool("debug", false, "Enable debug mode (shows key events in status)")
	addVisit := flag.String("add", "", "Add a visit to the URI to a running placestree instance")
	title := flag.String("title", "", "Title of the visit added with -add")
	session := flag.Int64("session", 0, "Session of the visit added with -add")
	noSocket := flag.Bool("no-socket", false, "Do not listen for commands from other processes")
	noWatch := flag.Bool("no-watch", false, "Do not reload the file when it changes")
	flag.Parse()

	if *addVisit != "" {
		if err := sendAddVisit(*addVisit, *title, *session); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Visit added")
		return
	}

	// filePath stays empty without an argument, which gives an empty tree
	var filePath string
	if args := flag.Args(); len(args) > 0 {
		filePath = args[0]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	statePath, err := cfg.OpenStateFile()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	states, err := openstate.Open(cfg.OpenState, statePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer states.Close()

	historyDir, err := config.GetConfigDir()
	if err != nil {
		log.Printf("History is not kept: %v", err)
	}

	application, err := app.NewApp(app.Options{
		FilePath:   filePath,
		Config:     cfg,
		OpenState:  states,
		HistoryDir: historyDir,
		Socket:     !*noSocket,
		Watch:      !*noWatch,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *debugMode {
		application.SetDebugMode(true)
	}

	if err := application.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Runtime error: %v\n", err)
		os.Exit(1)
	}
}

// sendAddVisit sends an add_visit command to a running placestree instance
func sendAddVisit(uri, title string, sessionID int64) error {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return fmt.Errorf("uri cannot be empty")
	}

	socketPath, pid, err := socket.FindRunningInstance()
	if err != nil {
		return fmt.Errorf("no running placestree instance found: %w", err)
	}
	log.Printf("Found running instance at PID %d: %s", pid, socketPath)

	client, err := socket.NewClient(socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	response, err := client.SendAddVisit(uri, title, sessionID)
	if err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}
	if !response.Success {
		return fmt.Errorf("server error: %s", response.Message)
	}

	log.Printf("Successfully sent add_visit command: %s", uri)
	return nil
}
