package graph_test

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/labtrack/lims/internal/graph"
	"github.com/labtrack/lims/internal/model/types"
	"github.com/labtrack/lims/internal/pkg/fiberstore"
	"github.com/labtrack/lims/internal/pkg/testdb"
	"github.com/labtrack/lims/internal/repo"
	"github.com/labtrack/lims/internal/service"
)

func newSchema(t *testing.T) (*graph.Schema, graph.Resolver) {
	t.Helper()

	db := testdb.Open(t)
	conf := testdb.Config()

	patientRepo := repo.NewPatient(db)
	sourceRepo := repo.NewSource(db)
	specimenRepo := repo.NewSpecimen(db)
	aliquotRepo := repo.NewAliquot(db)
	boxRepo := repo.NewBox(db)
	shipmentRepo := repo.NewShipment(db)
	user := service.NewUser(repo.NewUser(db))

	r := graph.Resolver{
		PatientSync: service.NewPatientSync(db, patientRepo, sourceRepo, conf),
		Patient:     service.NewPatient(patientRepo),
		Specimen:    service.NewSpecimen(specimenRepo, patientRepo),
		Aliquot:     service.NewAliquot(aliquotRepo, specimenRepo),
		Catalog:     service.NewCatalog(repo.NewCatalog(db), sourceRepo),
		Storage:     service.NewStorage(repo.NewStorage(db), boxRepo),
		Grid:        service.NewGrid(boxRepo),
		Manifest:    service.NewManifest(shipmentRepo, boxRepo),
		Shipment:    service.NewShipment(shipmentRepo, boxRepo, aliquotRepo),
		User:        user,
		Auth:        service.NewAuth(user, fiberstore.NewMemory(), conf),
	}
	schema, err := graph.NewSchema(r)
	require.NoError(t, err)
	return schema, r
}

func do(t *testing.T, ctx context.Context, schema *graph.Schema, query string, vars map[string]interface{}) gjson.Result {
	t.Helper()
	res := schema.Do(ctx, &graph.Request{Query: query, Variables: vars})
	b, err := json.Marshal(res)
	require.NoError(t, err)
	return gjson.ParseBytes(b)
}

func TestPatientMutationAndQuery(t *testing.T) {
	ctx := context.Background()
	schema, _ := newSchema(t)

	out := do(t, ctx, schema, `mutation { createPatient(pid: "P-7", externalId: "mrn-7") { outcome created patient { id pid externalId syncState source { name } } } }`, nil)
	require.False(t, out.Get("errors").Exists(), out.Raw)
	assert.Equal(t, "CREATED_LOCAL", out.Get("data.createPatient.outcome").String())
	assert.True(t, out.Get("data.createPatient.created").Bool())
	assert.Equal(t, "UNSYNCED", out.Get("data.createPatient.patient.syncState").String())
	assert.Equal(t, "local", out.Get("data.createPatient.patient.source.name").String())

	out = do(t, ctx, schema, `query($pid: String) { patient(pid: $pid) { pid externalId synced } }`, map[string]interface{}{"pid": "P-7"})
	require.False(t, out.Get("errors").Exists(), out.Raw)
	assert.Equal(t, "mrn-7", out.Get("data.patient.externalId").String())
	assert.False(t, out.Get("data.patient.synced").Bool())

	out = do(t, ctx, schema, `{ patient(pid: "P-404") { pid } }`, nil)
	assert.Equal(t, "NOT_FOUND", out.Get("errors.0.extensions.code").String())

	out = do(t, ctx, schema, `mutation { createPatient(pid: "not a pid!") { outcome } }`, nil)
	assert.Equal(t, "INVALID_REQUEST", out.Get("errors.0.extensions.code").String())
	assert.Equal(t, "pid", out.Get("errors.0.extensions.violations.0.violation").String())

	out = do(t, ctx, schema, `{ allPatients(limit: 10) { pid } patientCount }`, nil)
	assert.Equal(t, int64(1), out.Get("data.patientCount").Int())
	assert.Equal(t, "P-7", out.Get("data.allPatients.0.pid").String())
}

func TestMeRequiresViewer(t *testing.T) {
	ctx := context.Background()
	schema, r := newSchema(t)

	out := do(t, ctx, schema, `{ me { username } }`, nil)
	assert.Equal(t, "not logged in", out.Get("errors.0.message").String())
	assert.Equal(t, "UNAUTHENTICATED", out.Get("errors.0.extensions.code").String())

	_, err := r.User.CreateUser(ctx, &types.CreateUserRequest{Username: "dana", Password: "sufficiently long"})
	require.NoError(t, err)

	jar := &graph.CookieJar{}
	out = do(t, graph.WithCookieJar(ctx, jar), schema, `mutation { tokenAuth(username: "dana", password: "sufficiently long") { token payload { username } user { username } } }`, nil)
	require.False(t, out.Get("errors").Exists(), out.Raw)
	token := out.Get("data.tokenAuth.token").String()
	require.NotEmpty(t, token)
	assert.Equal(t, "dana", out.Get("data.tokenAuth.payload.username").String())

	pending, clear := jar.Pending()
	require.NotNil(t, pending)
	assert.False(t, clear)
	assert.Equal(t, token, pending.Token)

	viewer, err := r.Auth.Viewer(ctx, token)
	require.NoError(t, err)
	authed := graph.WithToken(graph.WithViewer(ctx, viewer), token)

	out = do(t, authed, schema, `{ me { username isStaff } }`, nil)
	require.False(t, out.Get("errors").Exists(), out.Raw)
	assert.Equal(t, "dana", out.Get("data.me.username").String())

	out = do(t, authed, schema, `mutation { createUser(username: "eve", password: "sufficiently long") { username } }`, nil)
	assert.Equal(t, "FORBIDDEN", out.Get("errors.0.extensions.code").String())

	out = do(t, authed, schema, `mutation { verifyToken { payload { username } } }`, nil)
	assert.Equal(t, "dana", out.Get("data.verifyToken.payload.username").String())

	jar = &graph.CookieJar{}
	out = do(t, graph.WithCookieJar(authed, jar), schema, `mutation { deleteTokenCookie { deleted } }`, nil)
	assert.True(t, out.Get("data.deleteTokenCookie.deleted").Bool())
	_, clear = jar.Pending()
	assert.True(t, clear)

	out = do(t, ctx, schema, `mutation($t: String) { verifyToken(token: $t) { payload { username } } }`, map[string]interface{}{"t": token})
	assert.Equal(t, "UNAUTHENTICATED", out.Get("errors.0.extensions.code").String())
}

func TestStorageAndGridQueries(t *testing.T) {
	ctx := context.Background()
	schema, _ := newSchema(t)

	out := do(t, ctx, schema, `mutation { createStorage(name: "Freezer", icon: "snowflake") { id isTopLevel icon } }`, nil)
	require.False(t, out.Get("errors").Exists(), out.Raw)
	freezerID := out.Get("data.createStorage.id").Int()
	assert.True(t, out.Get("data.createStorage.isTopLevel").Bool())

	out = do(t, ctx, schema, `mutation($c: Int) { createStorage(name: "Shelf", containerId: $c) { id containerId } }`, map[string]interface{}{"c": freezerID})
	require.False(t, out.Get("errors").Exists(), out.Raw)
	assert.Equal(t, freezerID, out.Get("data.createStorage.containerId").Int())

	out = do(t, ctx, schema, `mutation { createBoxType(name: "8x3", length: 8, height: 3, heightLabel: "alphabetic") { id heightLabel lengthLabel } }`, nil)
	require.False(t, out.Get("errors").Exists(), out.Raw)
	assert.Equal(t, "alphabetic", out.Get("data.createBoxType.heightLabel").String())
	assert.Equal(t, "numeric", out.Get("data.createBoxType.lengthLabel").String())
	boxTypeID := out.Get("data.createBoxType.id").Int()

	out = do(t, ctx, schema, `mutation($bt: Int!, $s: Int) { createBox(name: "Box 1", boxTypeId: $bt, storageLocationId: $s) { id boxType { length } } }`,
		map[string]interface{}{"bt": boxTypeID, "s": freezerID})
	require.False(t, out.Get("errors").Exists(), out.Raw)
	boxID := out.Get("data.createBox.id").String()

	out = do(t, ctx, schema, `{ storageUi { name isTopLevel children { name } boxes { name } } }`, nil)
	require.False(t, out.Get("errors").Exists(), out.Raw)
	assert.Equal(t, "Freezer", out.Get("data.storageUi.0.name").String())
	assert.Equal(t, "Shelf", out.Get("data.storageUi.0.children.0.name").String())
	assert.Equal(t, "Box 1", out.Get("data.storageUi.0.boxes.0.name").String())

	out = do(t, ctx, schema, `query($id: ID!) { boxGrid(boxId: $id) { name length height rows { label } mapping } }`, map[string]interface{}{"id": boxID})
	require.False(t, out.Get("errors").Exists(), out.Raw)
	assert.Equal(t, int64(8), out.Get("data.boxGrid.length").Int())
	assert.Equal(t, "Box 1", out.Get("data.boxGrid.mapping.name").String())
	assert.True(t, out.Get("data.boxGrid.rows").IsArray())

	out = do(t, ctx, schema, `mutation($id: ID!) { deleteStorage(id: $id) { reparentedLocations reparentedBoxes } }`, map[string]interface{}{"id": freezerID})
	require.False(t, out.Get("errors").Exists(), out.Raw)
	assert.Equal(t, int64(1), out.Get("data.deleteStorage.reparentedLocations").Int())
	assert.Equal(t, int64(1), out.Get("data.deleteStorage.reparentedBoxes").Int())
}

func TestAssignShipmentPacksExistingBox(t *testing.T) {
	ctx := context.Background()
	schema, _ := newSchema(t)

	out := do(t, ctx, schema, `mutation { createBoxType(name: "9x9", length: 9, height: 9) { id } }`, nil)
	require.False(t, out.Get("errors").Exists(), out.Raw)
	boxTypeID := out.Get("data.createBoxType.id").Int()

	out = do(t, ctx, schema, `mutation($bt: Int!) { createBox(name: "Loose box", boxTypeId: $bt) { id shipmentId } }`,
		map[string]interface{}{"bt": boxTypeID})
	require.False(t, out.Get("errors").Exists(), out.Raw)
	boxID := out.Get("data.createBox.id").Int()
	assert.Equal(t, gjson.Null, out.Get("data.createBox.shipmentId").Type)

	out = do(t, ctx, schema, `mutation { createShipment(shipmentNumber: "SH-1") { id } }`, nil)
	require.False(t, out.Get("errors").Exists(), out.Raw)
	shipmentID := out.Get("data.createShipment.id").Int()

	assign := `mutation($b: Int!, $s: Int) { assignShipment(boxId: $b, shipmentId: $s) { id shipmentId } }`

	out = do(t, ctx, schema, assign, map[string]interface{}{"b": boxID, "s": shipmentID})
	require.False(t, out.Get("errors").Exists(), out.Raw)
	assert.Equal(t, shipmentID, out.Get("data.assignShipment.shipmentId").Int())

	manifest := `query($s: ID!) { manifest(shipmentId: $s) { entries { boxId boxName aliquots { id } } } }`
	out = do(t, ctx, schema, manifest, map[string]interface{}{"s": shipmentID})
	require.False(t, out.Get("errors").Exists(), out.Raw)
	require.Equal(t, int64(1), out.Get("data.manifest.entries.#").Int())
	assert.Equal(t, boxID, out.Get("data.manifest.entries.0.boxId").Int())
	assert.Equal(t, "Loose box", out.Get("data.manifest.entries.0.boxName").String())

	out = do(t, ctx, schema, assign, map[string]interface{}{"b": boxID, "s": 999})
	assert.Equal(t, "NOT_FOUND", out.Get("errors.0.extensions.code").String())

	out = do(t, ctx, schema, assign, map[string]interface{}{"b": boxID})
	require.False(t, out.Get("errors").Exists(), out.Raw)
	assert.Equal(t, gjson.Null, out.Get("data.assignShipment.shipmentId").Type)

	out = do(t, ctx, schema, manifest, map[string]interface{}{"s": shipmentID})
	require.False(t, out.Get("errors").Exists(), out.Raw)
	assert.Equal(t, int64(0), out.Get("data.manifest.entries.#").Int())
}
