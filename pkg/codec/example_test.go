package codec_test

import (
	"errors"
	"fmt"
	"log"

	"github.com/ssargent/scratchlivedb/pkg/codec"
)

// ExampleAppendField demonstrates writing and reading back one field
func ExampleAppendField() {
	encoded := codec.AppendField(nil, "tsng", codec.EncodeString("Intro"))
	fmt.Printf("Encoded %d bytes\n", len(encoded))

	f, err := codec.ReadField(codec.NewReader(encoded))
	if err != nil {
		log.Fatal(err)
	}

	title, _ := codec.DecodeString(f.Value)
	fmt.Printf("Key: %s\n", f.Key)
	fmt.Printf("Value: %s\n", title)

	// Output:
	// Encoded 18 bytes
	// Key: tsng
	// Value: Intro
}

// ExampleEncodeString shows the two-bytes-per-character wire layout
func ExampleEncodeString() {
	fmt.Printf("% x\n", codec.EncodeString("@2.0"))

	// Output:
	// 00 40 00 32 00 2e 00 30
}

// ExampleReadField_errorHandling demonstrates error classification
func ExampleReadField_errorHandling() {
	_, err := codec.ReadField(codec.NewReader([]byte{'p', 'f', 'i', 'l', 0, 0, 0, 9}))
	if errors.Is(err, codec.ErrTruncated) {
		fmt.Printf("Decode error: %v\n", err)
	}

	// Output:
	// Decode error: truncated data at offset 4: field "pfil" declares 9 bytes, 0 available
}
