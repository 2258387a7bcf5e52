package codec_test

import (
	"errors"
	"fmt"

	"github.com/b64forge/b64forge/internal/codec"
)

func ExampleEncodeToString() {
	fmt.Println(codec.EncodeToString([]byte("Man"), true))
	fmt.Println(codec.EncodeToString([]byte("f"), true))
	fmt.Println(codec.EncodeToString([]byte("f"), false))
	// Output:
	// TWFu
	// Zg==
	// Zg
}

func ExampleDecoder_DecodeString() {
	strict := codec.Decoder{Policy: codec.PolicyStrict}

	out, err := strict.DecodeString("Zm8=")
	fmt.Println(string(out), err)

	_, err = strict.DecodeString("Zg==Zg==")
	fmt.Println(errors.Is(err, codec.ErrInvalidPadding))
	// Output:
	// fo <nil>
	// true
}
