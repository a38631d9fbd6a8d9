package generation

import "fmt"

func processPrompt(query string) string {
	return fmt.Sprintf(`
Eres un asistente experto en ingeniería civil y arquitectura especializado en normatividad de construcción colombiana.

Para la siguiente actividad de construcción: "%s"

Genera una respuesta detallada y técnica en español con la siguiente estructura:

1. Descripción del Proceso: Una explicación clara y concisa de la actividad.
2. Pasos Clave para el Éxito: Una lista numerada de los pasos más importantes a seguir, en orden cronológico.
3. Parámetros y Materiales: Información puntual, exacta y precisa sobre materiales, dosificaciones y control de calidad.
4. Normatividad Aplicable: Un apartado específico y claro bajo este título exacto. Resume las normas clave que aplican al proceso descrito, explicando brevemente su incumbencia.

REQUISITOS INDISPENSABLES:
* Citas Inline: Toda la información de los puntos 1, 2 y 3 debe citar explícitamente la norma colombiana que la respalda (y si es posible el artículo o sección), junto a la descripción. Por ejemplo: "El concreto debe tener una resistencia de 21 MPa (NSR-10, Título C.5.2)".
* Condicional de Normatividad: Si ninguna de las normativas de la lista aplica directamente al proceso consultado, OMITE POR COMPLETO la sección "Normatividad Aplicable". No escribas "No aplica" ni nada similar.
* Formato Markdown: Usa encabezados de nivel 1 (#) y 2 (##) únicamente. No uses encabezados de nivel 3 (###) o inferiores.

Lista de normativas de referencia obligatoria:
* NSR-10
* Normas Técnicas Colombianas (NTC)
* Normas ICONTEC
* Reglamento Técnico del Sector de Agua Potable y Saneamiento Básico (RAS)
* Reglamento Técnico de Instalaciones Eléctricas (RETIE)
* Reglamento Técnico de Iluminación y Alumbrado Público (RETILAP)
* Reglamento Técnico para Redes Internas de Telecomunicaciones (RITEL)
`, query)
}

func illustrationPrompt(query string) string {
	return fmt.Sprintf(`Crea un dibujo técnico o un esquema ilustrativo a color, claro y detallado, que represente el proceso constructivo de: "%s". El estilo debe ser como un diagrama profesional de un manual de construcción. Es indispensable que la ilustración sea a color, utilizando una paleta de colores clara para diferenciar materiales y etapas. IMPORTANTE: Todo el texto, etiquetas y anotaciones dentro del dibujo DEBEN ESTAR EN ESPAÑOL.`, query)
}
