package main

import (
	"encoding/json"
	"flag"
	"log"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/planar"

	elbow "elbow-router"
)

const defaultPadding = 20.0

type RouteRequest struct {
	Start    elbow.Vec2 `json:"start"`
	End      elbow.Vec2 `json:"end"`
	Padding  *float64   `json:"padding,omitempty"`
	Rotation float64    `json:"rotation,omitempty"`
}

type RouteResponse struct {
	Path         []elbow.Vec2 `json:"path"`
	Success      bool         `json:"success"`
	Message      string       `json:"message,omitempty"`
	Length       float64      `json:"length,omitempty"`
	StartBlockID string       `json:"startBlockId,omitempty"`
	EndBlockID   string       `json:"endBlockId,omitempty"`
}

type SceneRequest struct {
	Blocks     []elbow.SceneBlock `json:"blocks"`
	SaveToFile bool               `json:"saveToFile,omitempty"`
}

var (
	sceneMutex  sync.RWMutex
	sceneBlocks []elbow.SceneBlock
	sceneIndex  *elbow.SceneIndex
	lastPath    []elbow.Vec2
)

// corsMiddleware adds CORS headers to allow frontend requests
func corsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// POST /scene - Upload block snapshots and build the spatial index
func sceneHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SceneRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Invalid scene request body: %v\n", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	for i := range req.Blocks {
		if req.Blocks[i].ID == "" {
			req.Blocks[i].ID = uuid.NewString()
		}
	}

	index := elbow.NewSceneIndex(req.Blocks)

	sceneMutex.Lock()
	sceneBlocks = req.Blocks
	sceneIndex = index
	sceneMutex.Unlock()

	log.Printf("✅ Scene updated: %d blocks indexed\n", len(req.Blocks))

	if req.SaveToFile {
		if err := saveScene(req.Blocks, sceneFile); err != nil {
			log.Printf("⚠️  Failed to save scene: %v\n", err)
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"success":   true,
		"numBlocks": len(req.Blocks),
	})
}

// POST /route - Compute an elbow path between two endpoints. Endpoints
// that land on a scene block are treated as anchored to it.
func routeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	reqID := uuid.NewString()

	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ [%s] Invalid route request body: %v\n", reqID, err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	padding := defaultPadding
	if req.Padding != nil {
		padding = *req.Padding
	}

	log.Printf("📍 [%s] Route (%.2f, %.2f) → (%.2f, %.2f), padding %.1f\n",
		reqID, req.Start.X, req.Start.Y, req.End.X, req.End.Y, padding)

	sceneMutex.RLock()
	index := sceneIndex
	sceneMutex.RUnlock()

	var startBlock, endBlock *elbow.BlockRect
	var startID, endID string
	if index != nil {
		if b := index.BlockAt(req.Start); b != nil {
			startBlock = &b.Rect
			startID = b.ID
		}
		if b := index.BlockAt(req.End); b != nil {
			endBlock = &b.Rect
			endID = b.ID
		}
	}

	path := elbow.Route(req.Start, req.End, startBlock, endBlock, padding, req.Rotation)

	sceneMutex.Lock()
	lastPath = path
	sceneMutex.Unlock()

	response := RouteResponse{
		Path:         path,
		Success:      true,
		Length:       planar.Length(pathLineString(path)),
		StartBlockID: startID,
		EndBlockID:   endID,
	}

	log.Printf("✅ [%s] Path with %d waypoints, length %.2f\n",
		reqID, len(path), response.Length)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// GET /scene.geojson - Block outlines and the last routed path as a
// GeoJSON feature collection, for visualization.
func sceneGeoJSONHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sceneMutex.RLock()
	blocks := sceneBlocks
	path := lastPath
	sceneMutex.RUnlock()

	fc := geojson.NewFeatureCollection()
	for _, b := range blocks {
		corners := b.Rect.Corners()
		ring := make(orb.Ring, 0, 5)
		for _, c := range corners {
			ring = append(ring, orb.Point{c.X, c.Y})
		}
		ring = append(ring, ring[0])
		f := geojson.NewFeature(orb.Polygon{ring})
		f.Properties["id"] = b.ID
		f.Properties["kind"] = "block"
		fc.Append(f)
	}
	if len(path) > 0 {
		f := geojson.NewFeature(pathLineString(path))
		f.Properties["kind"] = "route"
		fc.Append(f)
	}

	w.Header().Set("Content-Type", "application/geo+json")
	json.NewEncoder(w).Encode(fc)
}

// GET /health - Health check endpoint
func healthHandler(w http.ResponseWriter, r *http.Request) {
	sceneMutex.RLock()
	numBlocks := len(sceneBlocks)
	hasScene := sceneIndex != nil
	sceneMutex.RUnlock()

	status := "ready"
	if !hasScene {
		status = "waiting for scene"
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    status,
		"hasScene":  hasScene,
		"numBlocks": numBlocks,
	})
}

func pathLineString(path []elbow.Vec2) orb.LineString {
	ls := make(orb.LineString, 0, len(path))
	for _, p := range path {
		ls = append(ls, orb.Point{p.X, p.Y})
	}
	return ls
}

var sceneFile string

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	flag.StringVar(&sceneFile, "scene", "scene.json", "scene file to load on startup and save on request")
	flag.Parse()

	log.Println("🚀 Elbow Arrow Routing Server")

	if blocks, err := loadScene(sceneFile); err == nil {
		index := elbow.NewSceneIndex(blocks)
		sceneMutex.Lock()
		sceneBlocks = blocks
		sceneIndex = index
		sceneMutex.Unlock()
		log.Printf("✅ Loaded scene from %s: %d blocks\n", sceneFile, len(blocks))
	} else {
		log.Println("ℹ️  No scene file found (this is normal on first run)")
		log.Println("   POST /scene to upload blocks")
	}

	http.HandleFunc("/route", corsMiddleware(routeHandler))
	http.HandleFunc("/scene", corsMiddleware(sceneHandler))
	http.HandleFunc("/scene.geojson", corsMiddleware(sceneGeoJSONHandler))
	http.HandleFunc("/health", corsMiddleware(healthHandler))

	log.Printf("Server starting on %s\n", *addr)
	log.Println("Endpoints:")
	log.Println("  POST /scene          - Upload block snapshots")
	log.Println("  POST /route          - Compute an elbow route")
	log.Println("  GET  /scene.geojson  - Blocks and last route for visualization")
	log.Println("  GET  /health         - Check server status")

	if err := http.ListenAndServe(*addr, nil); err != nil {
		log.Fatal(err)
	}
}
