package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/2beens/gymrats/internal/integrity"
	"github.com/2beens/gymrats/internal/plans"

	log "github.com/sirupsen/logrus"
)

// plan_signer signs training plan days produced outside the service (seed
// data, support fixes) or checks the signature of an exported plan.
//
//	plan_signer -in days.json              prints {"plan": [...], "signature": "..."}
//	plan_signer -in signed.json -verify    exits 1 if the signature does not match
func main() {
	inPath := flag.String("in", "-", "input json file, - for stdin")
	verify := flag.Bool("verify", false, "verify a signed plan instead of signing days")
	flag.Parse()

	secret := os.Getenv("GYMRATS_INTEGRITY_SECRET")
	if secret == "" {
		log.Fatalln("integrity secret not set. use GYMRATS_INTEGRITY_SECRET")
	}

	signer, err := integrity.NewSigner(secret)
	if err != nil {
		log.Fatalf("new signer: %s", err)
	}

	input, err := readInput(*inPath)
	if err != nil {
		log.Fatalf("read input: %s", err)
	}

	if *verify {
		var signed plans.SignedDays
		if err := json.Unmarshal(input, &signed); err != nil {
			log.Fatalf("unmarshal signed plan: %s", err)
		}
		if !signer.Verify(signed.Days, signed.Signature) {
			fmt.Println("INVALID")
			os.Exit(1)
		}
		fmt.Println("OK")
		return
	}

	var days []plans.Day
	if err := json.Unmarshal(input, &days); err != nil {
		log.Fatalf("unmarshal plan days: %s", err)
	}

	// only signing is used, storage and metrics stay unset
	signed, err := plans.NewService(nil, signer, nil).IssueTraining(days)
	if err != nil {
		log.Fatalf("sign plan: %s", err)
	}

	out, err := json.MarshalIndent(signed, "", "  ")
	if err != nil {
		log.Fatalf("marshal signed plan: %s", err)
	}
	fmt.Println(string(out))
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
