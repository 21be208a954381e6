package main

import (
	"context"
	"encoding/csv"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"music-match-be/internal/entity"
	"music-match-be/internal/repository/implementation"
	"music-match-be/pkg/database"
	"music-match-be/pkg/genre"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

const batchSize = 500

// Imports the track catalog from a CSV export. Rows without an id or a
// name are skipped; duplicate ids are ignored, so re-running the import
// is safe.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	csvPath := "data/tracks.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	file, err := os.Open(csvPath)
	if err != nil {
		log.Fatalf("Error: Failed to open catalog CSV %s: %v", csvPath, err)
	}
	defer file.Close()

	color.Cyan("🚀 Importing track catalog from %s\n", csvPath)

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		log.Fatalf("Error: Failed to read CSV header: %v", err)
	}
	col := map[string]int{}
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}

	trackRepo := implementation.NewTrackRepository(db)
	ctx := context.Background()

	var batch []*entity.Track
	imported, skipped := 0, 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			color.Red("Failed to read row: %v", err)
			skipped++
			continue
		}

		track := parseTrack(record, col)
		if track == nil {
			skipped++
			continue
		}

		batch = append(batch, track)
		if len(batch) >= batchSize {
			if err := trackRepo.CreateInBatches(ctx, batch, batchSize); err != nil {
				log.Fatalf("Error: Failed to insert batch: %v", err)
			}
			imported += len(batch)
			batch = batch[:0]
			color.Yellow("... %d tracks imported", imported)
		}
	}

	if len(batch) > 0 {
		if err := trackRepo.CreateInBatches(ctx, batch, batchSize); err != nil {
			log.Fatalf("Error: Failed to insert final batch: %v", err)
		}
		imported += len(batch)
	}

	color.Green("✅ Catalog import complete: %d imported, %d skipped", imported, skipped)
}

func parseTrack(record []string, col map[string]int) *entity.Track {
	get := func(name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	id := get("track_id")
	name := get("track_name")
	if id == "" || name == "" {
		return nil
	}

	track := &entity.Track{
		Id:            id,
		Name:          name,
		NameLowercase: strings.ToLower(name),
		Artists:       splitArtists(get("artists")),
		CreatedAt:     time.Now(),
	}

	if album := get("album_name"); album != "" {
		track.AlbumName = &album
	}

	// Popularity arrives as 0-100; the service works in [0,1]
	if pop, ok := parseInt(get("popularity")); ok {
		norm := clamp01(float64(pop) / 100.0)
		track.Popularity = &pop
		track.PopularityNorm = &norm
	}
	if duration, ok := parseInt(get("duration_ms")); ok {
		track.DurationMs = &duration
	}
	if explicitRaw := get("explicit"); explicitRaw != "" {
		explicit := strings.EqualFold(explicitRaw, "true") || explicitRaw == "1"
		track.Explicit = &explicit
	}

	track.Danceability = parseUnitFeature(get("danceability"))
	track.Energy = parseUnitFeature(get("energy"))
	track.Valence = parseUnitFeature(get("valence"))
	track.Acousticness = parseUnitFeature(get("acousticness"))
	track.Instrumentalness = parseUnitFeature(get("instrumentalness"))
	track.Liveness = parseUnitFeature(get("liveness"))
	track.Speechiness = parseUnitFeature(get("speechiness"))

	// Tempo is normalized against 250 BPM, the practical ceiling
	if tempo, ok := parseFloat(get("tempo")); ok {
		norm := clamp01(tempo / 250.0)
		track.Tempo = &tempo
		track.TempoNorm = &norm
	}

	if rawGenre := get("track_genre"); rawGenre != "" {
		normalized := strings.ToLower(rawGenre)
		group := genre.InferGroup(normalized)
		track.Genre = &normalized
		track.GenreGroup = &group
	}

	return track
}

func splitArtists(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	artists := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			artists = append(artists, trimmed)
		}
	}
	return artists
}

func parseInt(raw string) (int, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		// Some exports write integers as floats
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil {
			return 0, false
		}
		return int(f), true
	}
	return v, true
}

func parseFloat(raw string) (float64, bool) {
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseUnitFeature(raw string) *float64 {
	v, ok := parseFloat(raw)
	if !ok {
		return nil
	}
	clamped := clamp01(v)
	return &clamped
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
