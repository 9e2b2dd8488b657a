// Command statetoken is a small development harness around the builder and
// verifier libraries: a "build" subcommand that runs the offline witness
// builder over a JSON account map and prints the resulting calldata and
// root, and a "verify" subcommand that runs the verifier over calldata and
// a stored root and prints the outcome. This is explicitly a dev/test
// harness, not a specified surface (§6: "CLI / harness surface ... is out
// of scope; the builder is a library"); grounded on the teacher's
// examples/mk_trie/main.go and examples/trie_example/main.go, which reach
// for nothing fancier than a bare main() and the flag package.
package main

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/chainproofs/statetoken"
	"github.com/chainproofs/statetoken/bitpath"
	"github.com/chainproofs/statetoken/builder"
	"github.com/chainproofs/statetoken/execution"
	"github.com/chainproofs/statetoken/hashing"
	"github.com/chainproofs/statetoken/verifier"
	"github.com/chainproofs/statetoken/witness"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "build":
		runBuild(os.Args[2:])
	case "verify":
		runVerify(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: statetoken build -accounts accounts.json -touched addr1,addr2,...")
	fmt.Fprintln(os.Stderr, "       statetoken verify -calldata <hex> -root <hex>")
}

// accountsFile is the JSON shape accepted by "build": a map from address
// bit-string (e.g. "00101...") to decimal balance.
type accountsFile map[string]uint64

func runBuild(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	accountsPath := fs.String("accounts", "", "path to a JSON file mapping address bit-strings to balances")
	touched := fs.String("touched", "", "comma-separated list of touched address bit-strings")
	addressBits := fs.Int("address-bits", 160, "address width in bits (A)")
	hashBits := fs.Int("hash-bits", 160, "hash width in bits (H)")
	balanceBits := fs.Int("balance-bits", 64, "balance width in bits (B)")
	includeAddrs := fs.Bool("include-sorted-addresses", false, "also emit the optional sorted_addresses stream")
	fs.Parse(args)

	if *accountsPath == "" || *touched == "" {
		usage()
		os.Exit(2)
	}

	raw, err := os.ReadFile(*accountsPath)
	if err != nil {
		fatal(err)
	}
	var af accountsFile
	if err := json.Unmarshal(raw, &af); err != nil {
		fatal(err)
	}

	p := statetoken.Params{AddressBits: *addressBits, HashBits: *hashBits, BalanceBits: *balanceBits}
	accounts := make([]builder.Account, 0, len(af))
	for addr, bal := range af {
		accounts = append(accounts, builder.Account{Address: bitpath.FromString(addr), Balance: bal})
	}
	touchedAddrs := parseTouchedList(*touched)

	h := hashing.NewBlake2b(p.HashBytes())
	w, root, err := builder.Build(p, h, accounts, touchedAddrs, *includeAddrs)
	if err != nil {
		fatal(err)
	}

	calldata := witness.Encode(p, w)
	fmt.Printf("root:     %s\n", hex.EncodeToString(root))
	fmt.Printf("calldata: %s\n", hex.EncodeToString(calldata))
}

func runVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	calldataHex := fs.String("calldata", "", "hex-encoded calldata")
	rootHex := fs.String("root", "", "hex-encoded stored root")
	addressBits := fs.Int("address-bits", 160, "address width in bits (A)")
	hashBits := fs.Int("hash-bits", 160, "hash width in bits (H)")
	balanceBits := fs.Int("balance-bits", 64, "balance width in bits (B)")
	fs.Parse(args)

	if *calldataHex == "" || *rootHex == "" {
		usage()
		os.Exit(2)
	}

	calldata, err := hex.DecodeString(*calldataHex)
	if err != nil {
		fatal(err)
	}
	root, err := hex.DecodeString(*rootHex)
	if err != nil {
		fatal(err)
	}

	p := statetoken.Params{AddressBits: *addressBits, HashBits: *hashBits, BalanceBits: *balanceBits}
	h := hashing.NewBlake2b(p.HashBytes())

	result, err := verifier.Verify(context.Background(), p, h, calldata, hashing.Digest(root), execution.IdentityExecutor{}, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "verification failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("new root: %s\n", hex.EncodeToString(result.NewRoot))
}

func parseTouchedList(s string) []bitpath.Path {
	var ret []bitpath.Path
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				ret = append(ret, bitpath.FromString(s[start:i]))
			}
			start = i + 1
		}
	}
	return ret
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "error:", err)
	os.Exit(1)
}
