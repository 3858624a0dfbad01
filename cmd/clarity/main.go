// Command clarity serves and queries the FinTech glossary.
//
// Usage:
//
//	clarity serve [--config config.yaml]
//	clarity ask What is blockchain?
//	clarity stats --json
//	clarity convert terms.json terms.yaml
package main

import "github.com/heartmarshall/concept-clarity/internal/cli"

func main() {
	cli.Execute()
}
