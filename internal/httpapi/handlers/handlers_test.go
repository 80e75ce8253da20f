package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eyevinn-osaas/ograf-editor/internal/graphic"
	"github.com/eyevinn-osaas/ograf-editor/internal/models"
	"github.com/eyevinn-osaas/ograf-editor/internal/pkg/logger"
	"github.com/eyevinn-osaas/ograf-editor/internal/ports"
	"github.com/eyevinn-osaas/ograf-editor/internal/repositories"
)

// fakeStore is an in-memory templateStore.
type fakeStore struct {
	snaps map[string]models.Snapshot
}

func newFakeStore() *fakeStore {
	return &fakeStore{snaps: map[string]models.Snapshot{}}
}

func (s *fakeStore) Create(_ context.Context, snap models.Snapshot) error {
	if _, ok := s.snaps[snap.Manifest.ID]; ok {
		return repositories.ErrTemplateExists
	}
	s.snaps[snap.Manifest.ID] = snap
	return nil
}

func (s *fakeStore) Save(_ context.Context, snap models.Snapshot) error {
	s.snaps[snap.Manifest.ID] = snap
	return nil
}

func (s *fakeStore) Load(_ context.Context, id string) (models.Snapshot, error) {
	snap, ok := s.snaps[id]
	if !ok {
		return models.Snapshot{}, repositories.ErrTemplateNotFound
	}
	return snap, nil
}

func (s *fakeStore) List(_ context.Context) ([]repositories.TemplateSummary, error) {
	out := []repositories.TemplateSummary{}
	for id, snap := range s.snaps {
		out = append(out, repositories.TemplateSummary{ID: id, Name: snap.Manifest.Name})
	}
	return out, nil
}

func (s *fakeStore) Exists(_ context.Context, id string) (bool, error) {
	_, ok := s.snaps[id]
	return ok, nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := s.snaps[id]; !ok {
		return repositories.ErrTemplateNotFound
	}
	delete(s.snaps, id)
	return nil
}

type fakePublishes struct {
	nextID int64
	latest map[string]repositories.PublishRecord
}

func (p *fakePublishes) Enqueue(_ context.Context, templateID string) (int64, error) {
	p.nextID++
	if p.latest == nil {
		p.latest = map[string]repositories.PublishRecord{}
	}
	p.latest[templateID] = repositories.PublishRecord{
		ID:         p.nextID,
		TemplateID: templateID,
		Status:     repositories.PublishQueued,
	}
	return p.nextID, nil
}

func (p *fakePublishes) Latest(_ context.Context, templateID string) (repositories.PublishRecord, error) {
	rec, ok := p.latest[templateID]
	if !ok {
		return repositories.PublishRecord{}, repositories.ErrNoPublishes
	}
	return rec, nil
}

type fakeCache struct {
	entries map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string]string{}}
}

func (c *fakeCache) Get(_ context.Context, id string) (string, bool) {
	v, ok := c.entries[id]
	return v, ok
}

func (c *fakeCache) Set(_ context.Context, id, artifact string) error {
	c.entries[id] = artifact
	return nil
}

func (c *fakeCache) Invalidate(_ context.Context, id string) error {
	delete(c.entries, id)
	return nil
}

// fakeProvider is an in-memory storage provider for published bundles.
type fakeProvider struct {
	objects map[string]fakeObject
}

type fakeObject struct {
	contentType string
	body        string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{objects: map[string]fakeObject{}}
}

func (p *fakeProvider) Provider() string { return "fake" }

func (p *fakeProvider) PutObject(_ context.Context, in ports.PutObjectInput) (ports.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Reader)
	if err != nil {
		return ports.PutObjectOutput{}, err
	}
	p.objects[in.ObjectKey] = fakeObject{contentType: in.ContentType, body: string(data)}
	return ports.PutObjectOutput{ObjectKey: in.ObjectKey, Size: int64(len(data))}, nil
}

func (p *fakeProvider) GetObject(_ context.Context, objectKey string) (io.ReadCloser, string, int64, error) {
	obj, ok := p.objects[objectKey]
	if !ok {
		return nil, "", 0, errObjectMissing{}
	}
	return io.NopCloser(strings.NewReader(obj.body)), obj.contentType, int64(len(obj.body)), nil
}

func (p *fakeProvider) DeleteObject(_ context.Context, objectKey string) error {
	delete(p.objects, objectKey)
	return nil
}

type errObjectMissing struct{}

func (errObjectMissing) Error() string { return "object not found" }

type fakeQueue struct {
	payloads []string
}

func (q *fakeQueue) Push(_ context.Context, payload string) error {
	q.payloads = append(q.payloads, payload)
	return nil
}

// fakeHost records playout commands and completes them immediately.
type fakeHost struct {
	loaded   map[string]bool
	commands []string
}

func newFakeHost() *fakeHost {
	return &fakeHost{loaded: map[string]bool{}}
}

func done() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}

func (h *fakeHost) Load(snap models.Snapshot) <-chan struct{} {
	h.loaded[snap.Manifest.ID] = true
	h.commands = append(h.commands, "load "+snap.Manifest.ID)
	return done()
}

func (h *fakeHost) command(templateID, cmd string) (<-chan struct{}, error) {
	if !h.loaded[templateID] {
		return nil, errNotLoaded{}
	}
	h.commands = append(h.commands, cmd+" "+templateID)
	return done(), nil
}

func (h *fakeHost) Play(id string, skip bool) (<-chan struct{}, error) {
	return h.command(id, "play")
}

func (h *fakeHost) Stop(id string, skip bool) (<-chan struct{}, error) {
	return h.command(id, "stop")
}

func (h *fakeHost) Update(id string, data map[string]any) (<-chan struct{}, error) {
	return h.command(id, "update")
}

func (h *fakeHost) CustomAction(id, name string, data map[string]any) (<-chan struct{}, error) {
	return h.command(id, "action:"+name)
}

func (h *fakeHost) Teardown(id string) {
	delete(h.loaded, id)
}

type errNotLoaded struct{}

func (errNotLoaded) Error() string { return "NOT_FOUND: instance not loaded" }

type testEnv struct {
	handler   *Handler
	router    chi.Router
	store     *fakeStore
	publishes *fakePublishes
	cache     *fakeCache
	queue     *fakeQueue
	host      *fakeHost
	provider  *fakeProvider
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		store:     newFakeStore(),
		publishes: &fakePublishes{},
		cache:     newFakeCache(),
		queue:     &fakeQueue{},
		host:      newFakeHost(),
		provider:  newFakeProvider(),
	}
	env.handler = &Handler{
		log:       logger.New(logger.Config{Output: io.Discard}),
		sp:        env.provider,
		templates: env.store,
		publishes: env.publishes,
		artifacts: env.cache,
		queue:     env.queue,
		host:      env.host,
	}

	h := env.handler
	r := chi.NewRouter()
	r.Route("/templates", func(r chi.Router) {
		r.Post("/", h.PostTemplate)
		r.Get("/", h.ListTemplates)
		r.Post("/import", h.ImportTemplate)
		r.Route("/{templateId}", func(r chi.Router) {
			r.Get("/", h.GetTemplate)
			r.Delete("/", h.DeleteTemplate)
			r.Get("/export", h.ExportTemplate)
			r.Get("/artifact", h.GetArtifact)
			r.Post("/elements", h.PostElement)
			r.Patch("/elements/{elementId}", h.PatchElement)
			r.Delete("/elements/{elementId}", h.DeleteElement)
			r.Put("/schema/{propName}", h.PutProperty)
			r.Delete("/schema/{propName}", h.DeleteProperty)
			r.Patch("/animation", h.PatchAnimation)
			r.Post("/playout/load", h.PlayoutLoad)
			r.Post("/playout/play", h.PlayoutPlay)
			r.Post("/playout/stop", h.PlayoutStop)
			r.Post("/playout/update", h.PlayoutUpdate)
			r.Post("/playout/action", h.PlayoutAction)
			r.Post("/publish", h.PostPublish)
			r.Get("/publish", h.GetPublish)
			r.Get("/publish/objects/*", h.GetPublishObject)
		})
	})
	env.router = r
	return env
}

func (env *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) seed(t *testing.T, id string) {
	t.Helper()

	tpl, err := graphic.NewFromPreset(graphic.PresetLowerThird, id, "Seeded", "")
	require.NoError(t, err)
	require.NoError(t, env.store.Save(context.Background(), tpl.Snapshot()))
}

// seedPublished records a completed publish run with the given objects in
// both the publish record and the storage provider.
func (env *testEnv) seedPublished(t *testing.T, templateID string, objects map[string]fakeObject) {
	t.Helper()

	keys := make([]string, 0, len(objects))
	for key, obj := range objects {
		env.provider.objects[key] = obj
		keys = append(keys, key)
	}
	if env.publishes.latest == nil {
		env.publishes.latest = map[string]repositories.PublishRecord{}
	}
	env.publishes.latest[templateID] = repositories.PublishRecord{
		ID:         1,
		TemplateID: templateID,
		Status:     repositories.PublishDone,
		ObjectKeys: keys,
	}
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestPostTemplate(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/templates", `{"id":"lower-third","name":"Lower Third","preset":"lowerThird"}`)
	require.Equal(t, 201, rec.Code, rec.Body.String())

	snap, ok := env.store.snaps["lower-third"]
	require.True(t, ok)
	assert.Equal(t, "Lower Third", snap.Manifest.Name)
	assert.Len(t, snap.Elements, 3)
}

func TestPostTemplateRejectsBadSlug(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/templates", `{"id":"Lower Third!","preset":"lowerThird"}`)
	assert.Equal(t, 400, rec.Code)
	assert.Empty(t, env.store.snaps)
}

func TestPostTemplateRejectsUnknownPreset(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/templates", `{"id":"x","preset":"ticker"}`)
	assert.Equal(t, 400, rec.Code)
}

func TestPostTemplateConflict(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "taken")

	rec := env.do(t, "POST", "/templates", `{"id":"taken","preset":"title"}`)
	assert.Equal(t, 409, rec.Code)
}

func TestGetTemplate(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "demo")

	rec := env.do(t, "GET", "/templates/demo", "")
	require.Equal(t, 200, rec.Code)

	body := decodeBody(t, rec)
	tpl := body["template"].(map[string]any)
	manifest := tpl["manifest"].(map[string]any)
	assert.Equal(t, "demo", manifest["id"])
}

func TestGetTemplateNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "GET", "/templates/missing", "")
	assert.Equal(t, 404, rec.Code)
}

func TestDeleteTemplateTearsDownPlayout(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "demo")
	env.host.loaded["demo"] = true
	env.cache.entries["demo"] = "cached"

	rec := env.do(t, "DELETE", "/templates/demo", "")
	require.Equal(t, 204, rec.Code)
	assert.Empty(t, env.store.snaps)
	assert.False(t, env.host.loaded["demo"])
	assert.Empty(t, env.cache.entries)
}

func TestImportConflictPolicies(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "demo")
	stored := env.store.snaps["demo"]

	tpl, err := graphic.NewFromPreset(graphic.PresetTitle, "demo", "Imported", "")
	require.NoError(t, err)
	payload, err := tpl.Serialize()
	require.NoError(t, err)

	// default policy skips
	rec := env.do(t, "POST", "/templates/import", string(payload))
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "skipped", decodeBody(t, rec)["outcome"])
	assert.Equal(t, stored.Manifest.Name, env.store.snaps["demo"].Manifest.Name)

	rec = env.do(t, "POST", "/templates/import?on_conflict=replace", string(payload))
	require.Equal(t, 201, rec.Code)
	assert.Equal(t, "replaced", decodeBody(t, rec)["outcome"])
	assert.Equal(t, "Imported", env.store.snaps["demo"].Manifest.Name)

	rec = env.do(t, "POST", "/templates/import?on_conflict=rename", string(payload))
	require.Equal(t, 201, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "renamed", body["outcome"])
	renamedID := body["template_id"].(string)
	assert.NotEqual(t, "demo", renamedID)
	assert.True(t, strings.HasPrefix(renamedID, "demo-"))
	assert.Contains(t, env.store.snaps, renamedID)
}

func TestImportRejectsBadPolicy(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/templates/import?on_conflict=merge", `{}`)
	assert.Equal(t, 400, rec.Code)
}

func TestImportRejectsInvalidSnapshot(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/templates/import", `{"manifest":{"id":"BAD ID"},"elements":[],"animation":{}}`)
	assert.Equal(t, 400, rec.Code)
}

func TestExportTemplate(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "demo")

	rec := env.do(t, "GET", "/templates/demo/export", "")
	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "demo.json")

	var snap models.Snapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	assert.Equal(t, "demo", snap.Manifest.ID)
	assert.Len(t, snap.Elements, 3)
}

func TestElementLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "demo")

	rec := env.do(t, "POST", "/templates/demo/elements", `{"type":"text","x":10,"y":20,"width":100,"height":30,"content":"{{name}}"}`)
	require.Equal(t, 200, rec.Code, rec.Body.String())

	body := decodeBody(t, rec)
	el := body["element"].(map[string]any)
	elID := el["id"].(string)
	require.NotEmpty(t, elID)
	assert.Len(t, env.store.snaps["demo"].Elements, 4)

	rec = env.do(t, "PATCH", "/templates/demo/elements/"+elID, `{"x":50}`)
	require.Equal(t, 200, rec.Code)
	el = decodeBody(t, rec)["element"].(map[string]any)
	assert.Equal(t, 50.0, el["x"])
	assert.Equal(t, "{{name}}", el["content"])

	rec = env.do(t, "DELETE", "/templates/demo/elements/"+elID, "")
	require.Equal(t, 204, rec.Code)
	assert.Len(t, env.store.snaps["demo"].Elements, 3)
}

func TestPatchElementUnknownID(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "demo")

	rec := env.do(t, "PATCH", "/templates/demo/elements/nope", `{"x":1}`)
	assert.Equal(t, 404, rec.Code)
}

func TestPostElementRejectsBadType(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "demo")

	rec := env.do(t, "POST", "/templates/demo/elements", `{"type":"video","x":0,"y":0,"width":1,"height":1}`)
	assert.Equal(t, 400, rec.Code)
}

func TestMutationDropsCachedArtifact(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "demo")
	env.cache.entries["demo"] = "stale"

	rec := env.do(t, "POST", "/templates/demo/elements", `{"type":"rect","x":0,"y":0,"width":1,"height":1}`)
	require.Equal(t, 200, rec.Code)
	assert.Empty(t, env.cache.entries)
}

func TestSchemaProperty(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "demo")

	rec := env.do(t, "PUT", "/templates/demo/schema/ticker", `{"type":"string","title":"Ticker","default":"breaking"}`)
	require.Equal(t, 200, rec.Code, rec.Body.String())

	props := env.store.snaps["demo"].Manifest.Schema.Properties
	prop, ok := props.Get("ticker")
	require.True(t, ok)
	assert.Equal(t, "breaking", prop.Default)

	rec = env.do(t, "DELETE", "/templates/demo/schema/ticker", "")
	require.Equal(t, 204, rec.Code)
	props = env.store.snaps["demo"].Manifest.Schema.Properties
	_, ok = props.Get("ticker")
	assert.False(t, ok)
}

func TestPutPropertyRejectsBadType(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "demo")

	rec := env.do(t, "PUT", "/templates/demo/schema/x", `{"type":"object"}`)
	assert.Equal(t, 400, rec.Code)
}

func TestPatchAnimation(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "demo")

	rec := env.do(t, "PATCH", "/templates/demo/animation", `{"slideInDuration":250,"slideOutDirection":"bottom"}`)
	require.Equal(t, 200, rec.Code, rec.Body.String())

	anim := env.store.snaps["demo"].Animation
	assert.Equal(t, 250, anim.SlideInDuration)
	assert.Equal(t, models.DirectionBottom, anim.SlideOutDirection)
	// untouched fields keep their values
	assert.Equal(t, 500, anim.SlideOutDuration)
}

func TestPatchAnimationRejectsBadEasing(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "demo")

	rec := env.do(t, "PATCH", "/templates/demo/animation", `{"slideInType":"bounce"}`)
	assert.Equal(t, 400, rec.Code)
}

func TestGetArtifactCacheMiss(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "demo")

	rec := env.do(t, "GET", "/templates/demo/artifact", "")
	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/javascript")
	assert.Contains(t, rec.Body.String(), "customElements.define")

	// the generated text is now cached and embedded in the snapshot
	cached, ok := env.cache.entries["demo"]
	require.True(t, ok)
	assert.Equal(t, rec.Body.String(), cached)
	assert.Equal(t, cached, env.store.snaps["demo"].Artifact)
}

func TestGetArtifactCacheHit(t *testing.T) {
	env := newTestEnv(t)
	env.cache.entries["demo"] = "// cached artifact"

	rec := env.do(t, "GET", "/templates/demo/artifact", "")
	require.Equal(t, 200, rec.Code)
	assert.Equal(t, "// cached artifact", rec.Body.String())
}

func TestPlayoutSequence(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "demo")

	rec := env.do(t, "POST", "/templates/demo/playout/load", "")
	require.Equal(t, 200, rec.Code)

	rec = env.do(t, "POST", "/templates/demo/playout/play", `{"skipAnimation":true}`)
	require.Equal(t, 202, rec.Code)

	rec = env.do(t, "POST", "/templates/demo/playout/update", `{"data":{"name":"Ada"}}`)
	require.Equal(t, 202, rec.Code)

	rec = env.do(t, "POST", "/templates/demo/playout/action", `{"action":"slideOut"}`)
	require.Equal(t, 202, rec.Code)

	rec = env.do(t, "POST", "/templates/demo/playout/stop", "")
	require.Equal(t, 202, rec.Code)

	assert.Equal(t, []string{
		"load demo",
		"play demo",
		"update demo",
		"action:slideOut demo",
		"stop demo",
	}, env.host.commands)
}

func TestPlayoutCommandWithoutLoad(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "demo")

	rec := env.do(t, "POST", "/templates/demo/playout/play", "")
	assert.Equal(t, 500, rec.Code) // fake error is not a coded not-found
}

func TestPlayoutActionRequiresName(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "demo")
	env.do(t, "POST", "/templates/demo/playout/load", "")

	rec := env.do(t, "POST", "/templates/demo/playout/action", `{}`)
	assert.Equal(t, 400, rec.Code)
}

func TestPostPublish(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "demo")

	rec := env.do(t, "POST", "/templates/demo/publish", "")
	require.Equal(t, 202, rec.Code)

	require.Len(t, env.queue.payloads, 1)
	assert.Equal(t, "1", env.queue.payloads[0])

	rec = env.do(t, "GET", "/templates/demo/publish", "")
	require.Equal(t, 200, rec.Code)
	body := decodeBody(t, rec)
	pub := body["publish"].(map[string]any)
	assert.Equal(t, "queued", pub["status"])
}

func TestGetPublishBeforeFirstRun(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "demo")

	rec := env.do(t, "GET", "/templates/demo/publish", "")
	require.Equal(t, 404, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	errObj := body["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", errObj["code"])
}

func TestGetPublishObject(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "demo")
	env.seedPublished(t, "demo", map[string]fakeObject{
		"demo/manifest.json": {contentType: "application/json", body: `{"id":"demo"}`},
	})

	rec := env.do(t, "GET", "/templates/demo/publish/objects/demo/manifest.json", "")
	require.Equal(t, 200, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, `{"id":"demo"}`, rec.Body.String())
}

func TestGetPublishObjectOutsideBundle(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "demo")
	env.seedPublished(t, "demo", map[string]fakeObject{
		"demo/manifest.json": {contentType: "application/json", body: `{}`},
	})
	// present in storage but never part of the recorded bundle
	env.provider.objects["secret.txt"] = fakeObject{contentType: "text/plain", body: "nope"}

	rec := env.do(t, "GET", "/templates/demo/publish/objects/secret.txt", "")
	assert.Equal(t, 404, rec.Code)
}

func TestGetPublishObjectBeforeFirstRun(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "demo")

	rec := env.do(t, "GET", "/templates/demo/publish/objects/demo/manifest.json", "")
	assert.Equal(t, 404, rec.Code)
}

func TestDeleteTemplateRemovesPublishedBundle(t *testing.T) {
	env := newTestEnv(t)
	env.seed(t, "demo")
	env.seedPublished(t, "demo", map[string]fakeObject{
		"demo/manifest.json": {contentType: "application/json", body: `{}`},
		"demo/graphic.mjs":   {contentType: "text/javascript", body: "export default null"},
	})

	rec := env.do(t, "DELETE", "/templates/demo", "")
	require.Equal(t, 204, rec.Code)
	assert.Empty(t, env.provider.objects)
}

func TestPostPublishUnknownTemplate(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, "POST", "/templates/missing/publish", "")
	assert.Equal(t, 404, rec.Code)
	assert.Empty(t, env.queue.payloads)
}
