package domain

import (
	"encoding/json"
	"testing"
)

func TestIDUnmarshalJSON(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  ID
	}{
		{name: "string id", input: `"253"`, want: ID("253")},
		{name: "numeric id", input: `1700000000000`, want: ID("1700000000000")},
		{name: "null id", input: `null`, want: ID("")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var id ID
			if err := json.Unmarshal([]byte(tc.input), &id); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if id != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, id)
			}
		})
	}

	var id ID
	if err := json.Unmarshal([]byte(`{"nested":true}`), &id); err == nil {
		t.Fatalf("expected error for object identifier")
	}
}

func TestReviewDecodeNumericID(t *testing.T) {
	payload := []byte(`{"id":1700000000001,"productId":"305","name":"Ayaan","rating":5,"text":"fast delivery","verified":false}`)

	var review Review
	if err := json.Unmarshal(payload, &review); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if review.ID != ID("1700000000001") {
		t.Fatalf("expected normalised id, got %q", review.ID)
	}
	if review.ProductID != ID("305") {
		t.Fatalf("expected product id 305, got %q", review.ProductID)
	}
}

func TestProductIsVideo(t *testing.T) {
	if (Product{MediaType: MediaTypeImage, Thumbnail: "images/a.png"}).IsVideo() {
		t.Fatalf("image product must not present as video")
	}
	if !(Product{MediaType: MediaTypeVideo}).IsVideo() {
		t.Fatalf("mediaType video must present as video")
	}
	// VideoURL wins even when mediaType says image.
	if !(Product{MediaType: MediaTypeImage, VideoURL: "videos/clip.mp4"}).IsVideo() {
		t.Fatalf("videoUrl presence must take precedence")
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		input string
		want  float64
	}{
		{"$10", 10},
		{"$20.50", 20.5},
		{"25 USD", 25},
		{"v1.2.3", 1.2},
		{"$5.", 5},
		{".5", 0.5},
		{"..5", 0},
		{"free", 0},
		{"", 0},
	}
	for _, tc := range cases {
		if got := ParsePrice(tc.input); got != tc.want {
			t.Fatalf("ParsePrice(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}
