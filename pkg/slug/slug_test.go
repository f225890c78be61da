package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Tienda-api/pkg/slug"
)

func TestMake_QuitaDiacriticosYBajaACaja(t *testing.T) {
	assert.Equal(t, "cafe-colombiano", slug.Make("Café Colombiano"))
	assert.Equal(t, "nino-pequeno", slug.Make("Niño Pequeño"))
	assert.Equal(t, "arbol-magico", slug.Make("ÁRBOL MÁGICO"))
}

func TestMake_ReemplazaSeparadoresPorGuiones(t *testing.T) {
	assert.Equal(t, "foto-producto-01", slug.Make("foto_producto.01"))
	assert.Equal(t, "a-b-c", slug.Make("a/b/c"))
	// Separadores consecutivos colapsan en un único guion.
	assert.Equal(t, "uno-dos", slug.Make("uno -_ dos"))
}

func TestMake_SinGuionesEnLosExtremos(t *testing.T) {
	assert.Equal(t, "recorte", slug.Make("  recorte  "))
	assert.Equal(t, "final", slug.Make("final...."))
	assert.Equal(t, "inicio", slug.Make("---inicio"))
}

func TestMake_DescartaCaracteresNoSoportados(t *testing.T) {
	assert.Equal(t, "precio-100", slug.Make("¡precio! $100"))
	assert.Equal(t, "emoji", slug.Make("emoji 🎉"))
}

func TestMake_FallbackCuandoNoQuedaNada(t *testing.T) {
	assert.Equal(t, "file", slug.Make(""))
	assert.Equal(t, "file", slug.Make("¡¿!?"))
	assert.Equal(t, "file", slug.Make("----"))
}
