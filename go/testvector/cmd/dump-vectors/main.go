// Prints the records of a blob produced by wp-ecdsa-parser.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/ugorji/go/codec"
	"gopkg.in/urfave/cli.v1"

	"github.com/trustedfirmware/wpvectors/go/testvector"
)

var log = logrus.WithField("prefix", "dump-vectors")

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "dump-vectors"
	app.Usage = "print the test cases of a binary ECDSA test vector blob"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "i",
			Value: "in.json.bin",
			Usage: "binary test vector input file",
		},
		cli.StringFlag{
			Name:  "layout",
			Value: testvector.LayoutMessageFirst.String(),
			Usage: "order of message and signature in a record, msg-sig (Wycheproof order) or sig-msg",
		},
		cli.BoolFlag{
			Name:  "json",
			Usage: "print the records as JSON",
		},
	}
	app.Action = run
	return app
}

func ReadRecordsFromFile(path string, layout testvector.Layout) ([]*testvector.Record, error) {
	fi, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open input file %q for reading", path)
	}
	defer fi.Close()
	return testvector.ReadAll(fi, layout)
}

func run(c *cli.Context) error {
	layout, ok := testvector.ParseLayout(c.String("layout"))
	if !ok {
		return cli.NewExitError(fmt.Sprintf("Unknown layout %q", c.String("layout")), 1)
	}
	recs, err := ReadRecordsFromFile(c.String("i"), layout)
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	if c.Bool("json") {
		err = dumpJSON(c.App.Writer, recs)
	} else {
		err = dumpText(c.App.Writer, recs)
	}
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	log.Debugf("Dumped %d records", len(recs))
	return nil
}

func dumpText(w io.Writer, recs []*testvector.Record) error {
	for i, r := range recs {
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprintf(w, "Record #%d:\n", i)
		if r.KeyReused {
			fmt.Fprintln(w, "  Key: (reused)")
		} else {
			fmt.Fprintf(w, "  Key: %x (%d bytes)\n", r.Key, len(r.Key))
		}
		fmt.Fprintf(w, "  Message: %x (%d bytes)\n", r.Message, len(r.Message))
		fmt.Fprintf(w, "  Signature: %x (%d bytes)\n", r.Signature, len(r.Signature))
		if sr, ss, ok := testvector.ParseDERSignature(r.Signature); ok {
			fmt.Fprintf(w, "    r: %x\n    s: %x\n", sr, ss)
		} else {
			fmt.Fprintln(w, "    (not a DER Ecdsa-Sig-Value)")
		}
		if _, err := fmt.Fprintf(w, "  Status: %v (%d)\n", r.Status, int32(r.Status)); err != nil {
			return err
		}
	}
	return nil
}

type jsonRecord struct {
	Index     int    `codec:"index"`
	Key       string `codec:"key,omitempty"`
	KeyReused bool   `codec:"keyReused"`
	Message   string `codec:"msg"`
	Signature string `codec:"sig"`
	DER       bool   `codec:"der"`
	Status    int32  `codec:"status"`
	Result    string `codec:"result"`
}

func dumpJSON(w io.Writer, recs []*testvector.Record) error {
	out := make([]jsonRecord, 0, len(recs))
	for i, r := range recs {
		_, _, der := testvector.ParseDERSignature(r.Signature)
		out = append(out, jsonRecord{
			Index:     i,
			Key:       hex.EncodeToString(r.Key),
			KeyReused: r.KeyReused,
			Message:   hex.EncodeToString(r.Message),
			Signature: hex.EncodeToString(r.Signature),
			DER:       der,
			Status:    int32(r.Status),
			Result:    r.Status.String(),
		})
	}
	handle := &codec.JsonHandle{}
	handle.Indent = 2
	if err := codec.NewEncoder(w, handle).Encode(out); err != nil {
		return errors.Wrap(err, "Failed to encode records")
	}
	_, err := fmt.Fprintln(w)
	return err
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
