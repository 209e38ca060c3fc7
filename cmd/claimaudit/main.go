// Command claimaudit audits an insurance claim estimate for financial,
// leakage, and supplement-risk findings.
package main

import "github.com/ingo-eichhorst/claim-integrity-engine/cmd"

func main() {
	cmd.Execute()
}
