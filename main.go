package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/Iranians-Vote-Digital-Democracy/INIDCA/pkg/card"
	"github.com/Iranians-Vote-Digital-Democracy/INIDCA/pkg/idcard"
	"github.com/Iranians-Vote-Digital-Democracy/INIDCA/pkg/tlv"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// --- 1. Hardware Setup ---
	transport := &card.PCSC{Logger: logger}

	// --- 2. Logic Setup ---
	orch := idcard.NewOrchestrator(transport)
	orch.Logger = logger

	// --- 3. Execution Flow ---
	// Operations hold the card session exclusively, so they run one after
	// another, never interleaved.
	readCertificates(orch)
	readDates(orch)
	readAFIS(orch)
	readSerial(orch)

	fmt.Println("\n>> Done")
}

func readCertificates(orch *idcard.Orchestrator) {
	banner("Step 1: READ CERTIFICATES")

	for _, read := range []struct {
		name string
		run  func() (idcard.Result, error)
	}{
		{"signing", orch.ReadSigningCertificate},
		{"authentication", orch.ReadAuthenticationCertificate},
	} {
		res, err := read.run()
		if handleTagLost(err) {
			return
		}
		if !res.Success {
			fmt.Printf("(!) %s certificate: %s\n", read.name, res.Diagnostic)
			continue
		}

		fmt.Printf(">> %s certificate: %d bytes read\n", read.name, res.Size)

		cert, err := idcard.ParseCertificate(res.Payload)
		if err != nil {
			log.Printf("Warning: certificate did not parse: %v", err)
			continue
		}
		fmt.Printf("   %s\n", idcard.CertificateSummary(cert))
	}
}

func readDates(orch *idcard.Orchestrator) {
	banner("Step 2: READ ISSUE/EXPIRY DATES")

	dates, res, err := orch.ReadDates()
	if handleTagLost(err) {
		return
	}
	if !res.Success {
		fmt.Printf("(!) date read failed: %s\n", res.Diagnostic)
		return
	}

	fmt.Printf(">> issue:  %s\n>> expiry: %s\n", dates.Issue, dates.Expiry)
	fmt.Println("   Payload:")
	fmt.Println(tlv.Describe(res.Payload))
}

func readAFIS(orch *idcard.Orchestrator) {
	banner("Step 3: READ AFIS FLAG")

	flag, res, err := orch.ReadAFISFlag()
	if handleTagLost(err) {
		return
	}
	if !res.Success {
		fmt.Printf("(!) AFIS read failed: %s\n", res.Diagnostic)
		return
	}

	fmt.Printf(">> biometric check required: %v (raw %s)\n", flag.Required, flag.Raw)
}

func readSerial(orch *idcard.Orchestrator) {
	banner("Step 4: READ CARD SERIAL")

	serial, res, err := orch.ReadCardSerial()
	if handleTagLost(err) {
		return
	}
	if !res.Success {
		fmt.Printf("(!) serial read failed: %s\n", res.Diagnostic)
		return
	}

	fmt.Printf(">> serial:    %s\n>> reference: %s\n", serial.Number, serial.Reference)
}

// handleTagLost reports card removal to the user. Re-polling for the card is
// the caller's decision; this demo just stops the current step.
func handleTagLost(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, card.ErrTagLost) {
		fmt.Println("(!) card removed, present it again and restart")
		return true
	}
	log.Fatalf("Transport error: %v", err)
	return true
}

func banner(title string) {
	fmt.Println("\n=============================================")
	fmt.Printf(" %s\n", title)
	fmt.Println("=============================================")
}
