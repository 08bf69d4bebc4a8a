// SPDX-License-Identifier: Apache-2.0
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"rubyfront/internal/config"
	"rubyfront/internal/lsp"
)

const lsName = "rubyfront"

var version = "0.1.0"

func main() {
	cfgFile := flag.String("config", "", "config file (default: .rubyfront.toml if present)")
	flag.Parse()

	var cfg *config.Config
	var err error
	if *cfgFile != "" {
		cfg, err = config.Load(*cfgFile)
	} else {
		cfg, err = config.Discover(".")
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	// stdout carries the protocol, so logs go to the configured file or stderr
	var logFile *string
	if cfg.LogFile != "" {
		logFile = &cfg.LogFile
	}
	commonlog.Configure(cfg.LogVerbosity, logFile)
	log := commonlog.GetLogger("rubyfront.lsp")

	rubyHandler := lsp.NewRubyHandler(lsName, version, cfg.ParserOptions()...)

	handler := protocol.Handler{
		Initialize:                     rubyHandler.Initialize,
		Initialized:                    rubyHandler.Initialized,
		Shutdown:                       rubyHandler.Shutdown,
		SetTrace:                       rubyHandler.SetTrace,
		TextDocumentDidOpen:            rubyHandler.TextDocumentDidOpen,
		TextDocumentDidClose:           rubyHandler.TextDocumentDidClose,
		TextDocumentDidChange:          rubyHandler.TextDocumentDidChange,
		TextDocumentHover:              rubyHandler.TextDocumentHover,
		TextDocumentSemanticTokensFull: rubyHandler.TextDocumentSemanticTokensFull,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Info("starting language server")
	if err := s.RunStdio(); err != nil {
		log.Errorf("language server stopped: %s", err)
		os.Exit(1)
	}
}
