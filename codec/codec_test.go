package codec

import (
	"reflect"
	"strings"
	"testing"
)

type place struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	FullName string `json:"fullName,omitempty"`
}

func allCodecs(t *testing.T) map[string]Codec[[]place] {
	t.Helper()
	out := make(map[string]Codec[[]place])
	for _, name := range []string{"json", "msgpack", "cbor"} {
		cd, err := ByName[[]place](name)
		if err != nil {
			t.Fatalf("ByName(%q): %v", name, err)
		}
		out[name] = cd
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	cases := map[string][]place{
		"empty":   {},
		"ascii":   {{ID: 1, Name: "Gangnam"}, {ID: 2, Name: "Seocho"}},
		"unicode": {{ID: 11, Name: "강남구", FullName: "서울특별시 강남구"}, {ID: 12, Name: "Zürich ☃"}},
	}
	for cname, cd := range allCodecs(t) {
		for name, in := range cases {
			b, err := cd.Encode(in)
			if err != nil {
				t.Fatalf("%s/%s: Encode: %v", cname, name, err)
			}
			out, err := cd.Decode(b)
			if err != nil {
				t.Fatalf("%s/%s: Decode: %v", cname, name, err)
			}
			if len(in) == 0 {
				if len(out) != 0 {
					t.Fatalf("%s/%s: got %v", cname, name, out)
				}
				continue
			}
			if !reflect.DeepEqual(in, out) {
				t.Fatalf("%s/%s: round trip mismatch: %v != %v", cname, name, out, in)
			}
		}
	}
}

func TestJSONIsTextual(t *testing.T) {
	b, err := JSON[[]place]{}.Encode([]place{{ID: 1, Name: "Gangnam"}})
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(b), `[{"id":1,"name":"Gangnam"}]`; got != want {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestDecodeRejectsTrailingBytes(t *testing.T) {
	for cname, cd := range allCodecs(t) {
		b, err := cd.Encode([]place{{ID: 1, Name: "x"}})
		if err != nil {
			t.Fatalf("%s: Encode: %v", cname, err)
		}
		b = append(b, b...)
		if _, err := cd.Decode(b); err == nil {
			t.Fatalf("%s: expected error on trailing bytes", cname)
		}
	}
}

func TestJSONDecodeRejectsStrayDelimiters(t *testing.T) {
	cd := JSON[[]place]{}
	for _, in := range []string{
		`[{"id":1,"name":"Gangnam"}]]}}`,
		`[{"id":1,"name":"Gangnam"}]]`,
		`[{"id":1,"name":"Gangnam"}]}`,
		`[{"id":1,"name":"Gangnam"}] 1`,
	} {
		if got, err := cd.Decode([]byte(in)); err == nil {
			t.Fatalf("Decode(%s) = %v, want error", in, got)
		}
	}
}

func TestJSONDecodeAllowsTrailingWhitespace(t *testing.T) {
	got, err := JSON[[]place]{}.Decode([]byte("[{\"id\":1,\"name\":\"Gangnam\"}]\n \t"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Gangnam" {
		t.Fatalf("got %v", got)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	for cname, cd := range allCodecs(t) {
		if _, err := cd.Decode([]byte("\xff\x00not-a-value")); err == nil {
			t.Fatalf("%s: expected error on garbage", cname)
		}
	}
}

func TestMsgpackFollowsJSONTags(t *testing.T) {
	b, err := Msgpack[place]{}.Encode(place{ID: 1, Name: "n", FullName: "f"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), "fullName") {
		t.Fatalf("msgpack payload should use json field names: %q", b)
	}
}

func TestCBORRejectsIndefiniteLength(t *testing.T) {
	cd := MustCBOR[[]place](true)
	// 0x9f ... 0xff: indefinite-length empty array
	if _, err := cd.Decode([]byte{0x9f, 0xff}); err == nil {
		t.Fatal("expected error on indefinite-length array")
	}
}

func TestCBORDeterministic(t *testing.T) {
	cd := MustCBOR[map[string]int](true)
	a, err := cd.Encode(map[string]int{"b": 2, "a": 1, "c": 3})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		b, err := cd.Encode(map[string]int{"c": 3, "a": 1, "b": 2})
		if err != nil {
			t.Fatal(err)
		}
		if string(a) != string(b) {
			t.Fatalf("deterministic CBOR differs: %x vs %x", a, b)
		}
	}
}

func TestLimit(t *testing.T) {
	lc := Limit[[]place]{Inner: JSON[[]place]{}, MaxDecode: 10}
	b, err := lc.Encode([]place{{ID: 1, Name: "Gangnam"}})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := lc.Decode(b); err == nil {
		t.Fatalf("expected size error for %d bytes", len(b))
	}
	if _, err := lc.Decode([]byte(`[]`)); err != nil {
		t.Fatalf("small payload: %v", err)
	}
	unlimited := Limit[[]place]{Inner: JSON[[]place]{}}
	if _, err := unlimited.Decode(b); err != nil {
		t.Fatalf("MaxDecode=0 should not limit: %v", err)
	}
}

func TestByNameUnknown(t *testing.T) {
	if _, err := ByName[[]place]("xml"); err == nil {
		t.Fatalf("expected error for unknown codec")
	}
}
