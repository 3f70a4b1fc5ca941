package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"github.com/CWBudde/go-caps-lsp/internal/lsp"
	"github.com/CWBudde/go-caps-lsp/internal/server"
)

const version = "0.1.0"

var (
	tcpMode   bool
	tcpPort   int
	logFile   string
	verbosity int
)

func init() {
	// Command-line flags
	flag.BoolVar(&tcpMode, "tcp", false, "Run server in TCP mode (for debugging)")
	flag.IntVar(&tcpPort, "port", 8765, "TCP port to listen on (used with -tcp)")
	flag.StringVar(&logFile, "log-file", "", "Log file path (default: stderr)")
	flag.IntVar(&verbosity, "verbose", 0, "Transport log verbosity (0-2)")
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr, "go-caps-lsp version %s\n\n", version)
	fmt.Fprintf(os.Stderr, "Usage: go-caps-lsp [options]\n\n")
	fmt.Fprintf(os.Stderr, "Language server that flags all-uppercase words\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Parse()

	// Print version if requested
	if flag.NArg() > 0 && flag.Arg(0) == "version" {
		fmt.Printf("go-caps-lsp version %s\n", version)
		os.Exit(0)
	}

	setupLogging()

	session := lsp.NewSession(server.New())

	// One handler function per event kind, bound to the session
	handler := protocol.Handler{
		Initialize:                         session.Initialize,
		Initialized:                        session.Initialized,
		Shutdown:                           session.Shutdown,
		SetTrace:                           session.SetTrace,
		TextDocumentDidOpen:                session.DidOpen,
		TextDocumentDidChange:              session.DidChange,
		TextDocumentDidClose:               session.DidClose,
		TextDocumentCompletion:             session.Completion,
		CompletionItemResolve:              session.CompletionResolve,
		WorkspaceDidChangeConfiguration:    session.DidChangeConfiguration,
		WorkspaceDidChangeWatchedFiles:     session.DidChangeWatchedFiles,
		WorkspaceDidChangeWorkspaceFolders: session.DidChangeWorkspaceFolders,
	}

	glspServer := glspserver.NewServer(&handler, "go-caps-lsp", verbosity > 1)

	if tcpMode {
		log.Printf("Starting TCP server on port %d", tcpPort)
		if err := glspServer.RunTCP(fmt.Sprintf("127.0.0.1:%d", tcpPort)); err != nil {
			log.Fatalf("TCP server error: %v", err)
		}
	} else {
		log.Println("Starting STDIO server")
		if err := glspServer.RunStdio(); err != nil {
			log.Fatalf("STDIO server error: %v", err)
		}
	}
}

// setupLogging configures the transport logging backend and the handler
// log output.
func setupLogging() {
	if logFile != "" {
		commonlog.Configure(verbosity, &logFile)

		f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		log.SetOutput(f)
	} else {
		commonlog.Configure(verbosity, nil)
		log.SetOutput(os.Stderr)
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
