package testhelper

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// FromHex converts strings of the form "12 34  5678 9a" to byte slices.
func FromHex(h string) []byte {
	b, err := hex.DecodeString(strings.Replace(h, " ", "", -1))
	if err != nil {
		panic(err)
	}
	return b
}

type Case struct {
	ID      int
	Comment string
	Msg     string
	Sig     string
	Result  string
}

// Group is a Wycheproof test group. An empty Key omits the publicKey object.
type Group struct {
	Key   string
	Tests []Case
}

// WycheproofText renders groups in the layout of the published Wycheproof
// ECDSA verification files: one field per line and " : " separators.
func WycheproofText(groups ...Group) string {
	var b strings.Builder
	b.WriteString("{\n")
	b.WriteString("  \"algorithm\" : \"ECDSA\",\n")
	b.WriteString("  \"numberOfTests\" : " + fmt.Sprint(countTests(groups)) + ",\n")
	b.WriteString("  \"notes\" : {\n    \"MissingZero\" : \"Some implementations omit the leading 00 of a positive integer.\"\n  },\n")
	b.WriteString("  \"testGroups\" : [\n")
	for i, g := range groups {
		b.WriteString("    {\n")
		b.WriteString("      \"type\" : \"EcdsaVerify\",\n")
		if g.Key != "" {
			b.WriteString("      \"publicKey\" : {\n")
			b.WriteString("        \"type\" : \"EcPublicKey\",\n")
			b.WriteString("        \"curve\" : \"secp384r1\",\n")
			b.WriteString("        \"keySize\" : 384,\n")
			fmt.Fprintf(&b, "        \"uncompressed\" : \"%s\",\n", g.Key)
			b.WriteString("        \"wx\" : \"00\",\n")
			b.WriteString("        \"wy\" : \"00\"\n")
			b.WriteString("      },\n")
		}
		b.WriteString("      \"sha\" : \"SHA-384\",\n")
		b.WriteString("      \"tests\" : [\n")
		for j, c := range g.Tests {
			b.WriteString("        {\n")
			fmt.Fprintf(&b, "          \"tcId\" : %d,\n", c.ID)
			fmt.Fprintf(&b, "          \"comment\" : \"%s\",\n", c.Comment)
			b.WriteString("          \"flags\" : [],\n")
			fmt.Fprintf(&b, "          \"msg\" : \"%s\",\n", c.Msg)
			fmt.Fprintf(&b, "          \"sig\" : \"%s\",\n", c.Sig)
			fmt.Fprintf(&b, "          \"result\" : \"%s\"\n", c.Result)
			b.WriteString("        }")
			if j != len(g.Tests)-1 {
				b.WriteString(",")
			}
			b.WriteString("\n")
		}
		b.WriteString("      ]\n    }")
		if i != len(groups)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("  ]\n}\n")
	return b.String()
}

func countTests(groups []Group) int {
	n := 0
	for _, g := range groups {
		n += len(g.Tests)
	}
	return n
}
