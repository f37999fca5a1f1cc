package inflate

import (
	"bytes"
	"testing"
)

// buildStored assembles a single stored (uncompressed) DEFLATE block for
// payload p: BFINAL=1, BTYPE=00, byte-aligned, LEN/NLEN, then p.
func buildStored(p []byte) []byte {
	var b []byte
	b = append(b, 0x01) // BFINAL=1, BTYPE=00 in the low 3 bits, byte-aligned after
	n := len(p)
	b = append(b, byte(n), byte(n>>8), byte(^n), byte(^n>>8))
	b = append(b, p...)
	return b
}

func TestInflateStoredBlock(t *testing.T) {
	want := []byte("hello, ssfn2")
	got, err := Inflate(buildStored(want))
	if err != nil {
		t.Fatalf("Inflate: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("Inflate: got %q, want %q", got, want)
	}
}

func TestInflateStoredRejectsBadLengthCheck(t *testing.T) {
	b := buildStored([]byte("x"))
	b[3] ^= 0xFF // corrupt NLEN
	if _, err := Inflate(b); err == nil {
		t.Fatal("Inflate: got nil error, want a length-check failure")
	}
}

func TestIsGzip(t *testing.T) {
	if !IsGzip([]byte{0x1F, 0x8B, 0, 0}) {
		t.Error("IsGzip: got false, want true for 1F 8B prefix")
	}
	if IsGzip([]byte{'S', 'F', 'N', '2'}) {
		t.Error("IsGzip: got true, want false for SFN2 magic")
	}
}

func TestGunzipMinimal(t *testing.T) {
	payload := []byte("SFN2 data")
	deflate := buildStored(payload)
	gz := []byte{0x1F, 0x8B, 8, 0, 0, 0, 0, 0, 0, 0}
	gz = append(gz, deflate...)
	got, err := Gunzip(gz)
	if err != nil {
		t.Fatalf("Gunzip: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Gunzip: got %q, want %q", got, payload)
	}
}

func TestGunzipHonorsFName(t *testing.T) {
	payload := []byte("abc")
	deflate := buildStored(payload)
	gz := []byte{0x1F, 0x8B, 8, 8 /* FNAME */, 0, 0, 0, 0, 0, 0}
	gz = append(gz, []byte("font.sfn\x00")...)
	gz = append(gz, deflate...)
	got, err := Gunzip(gz)
	if err != nil {
		t.Fatalf("Gunzip: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("Gunzip: got %q, want %q", got, payload)
	}
}

func TestParseZlibHeaderRejectsBadChecksum(t *testing.T) {
	if err := ParseZlibHeader([]byte{0x78, 0x00}); err == nil {
		t.Fatal("ParseZlibHeader: got nil error, want checksum failure")
	}
}

func TestParseZlibHeaderAcceptsStandard(t *testing.T) {
	// 0x78 0x9C is the common zlib "default compression" header: CM=8,
	// CINFO=7, and (0x78*256+0x9C) % 31 == 0.
	if err := ParseZlibHeader([]byte{0x78, 0x9C}); err != nil {
		t.Errorf("ParseZlibHeader: got %v, want nil", err)
	}
}
