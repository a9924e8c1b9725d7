// Package docs registra la especificación OpenAPI de la API de la oficina.
// Regenerar con: swag init -g cmd/api/main.go -o docs
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "Bearer": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/api/auth/register": {
            "post": {"tags": ["auth"], "summary": "Primeiro acesso ao dashboard (inicia o teste gratuito)", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/api/auth/login": {
            "post": {"tags": ["auth"], "summary": "Login do dashboard", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/auth/me": {
            "get": {"security": [{"Bearer": []}], "tags": ["auth"], "summary": "Administrador da sessão", "responses": {"200": {"description": "OK"}}}
        },
        "/api/auth/subscribe": {
            "post": {"security": [{"Bearer": []}], "tags": ["auth"], "summary": "Ativar assinatura", "responses": {"200": {"description": "OK"}}}
        },
        "/api/dashboard/summary": {
            "get": {"security": [{"Bearer": []}], "tags": ["dashboard"], "summary": "Resumo do mês", "responses": {"200": {"description": "OK"}, "402": {"description": "Payment Required"}}}
        },
        "/api/cars": {
            "get": {"security": [{"Bearer": []}], "tags": ["cars"], "summary": "Listar carros", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"Bearer": []}], "tags": ["cars"], "summary": "Cadastrar carro", "responses": {"201": {"description": "Created"}}}
        },
        "/api/cars/{id}/revert": {
            "post": {"security": [{"Bearer": []}], "tags": ["cars"], "summary": "Voltar o carro para a etapa anterior", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/api/budgets": {
            "get": {"security": [{"Bearer": []}], "tags": ["budgets"], "summary": "Listar orçamentos", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"Bearer": []}], "tags": ["budgets"], "summary": "Criar orçamento", "responses": {"201": {"description": "Created"}}}
        },
        "/api/budgets/{id}/convert": {
            "post": {"security": [{"Bearer": []}], "tags": ["budgets"], "summary": "Converter orçamento aprovado em serviço", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/api/stock/items": {
            "get": {"security": [{"Bearer": []}], "tags": ["stock"], "summary": "Listar materiais", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"Bearer": []}], "tags": ["stock"], "summary": "Cadastrar material", "responses": {"201": {"description": "Created"}}}
        },
        "/api/stock/movements": {
            "get": {"security": [{"Bearer": []}], "tags": ["stock"], "summary": "Livro de movimentos", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"Bearer": []}], "tags": ["stock"], "summary": "Registrar movimento de estoque", "responses": {"201": {"description": "Created"}}}
        },
        "/api/stock/replenishment-list": {
            "get": {"security": [{"Bearer": []}], "tags": ["stock"], "summary": "Lista de reposição", "responses": {"200": {"description": "OK"}}}
        },
        "/api/employees": {
            "get": {"security": [{"Bearer": []}], "tags": ["employees"], "summary": "Listar funcionários", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"Bearer": []}], "tags": ["employees"], "summary": "Cadastrar funcionário", "responses": {"201": {"description": "Created"}}}
        },
        "/api/payroll/payments": {
            "post": {"security": [{"Bearer": []}], "tags": ["payroll"], "summary": "Registrar pagamento", "responses": {"201": {"description": "Created"}, "422": {"description": "Unprocessable Entity"}}}
        },
        "/api/expenses/summary": {
            "get": {"security": [{"Bearer": []}], "tags": ["expenses"], "summary": "Resumo de despesas do mês", "responses": {"200": {"description": "OK"}}}
        },
        "/api/invoices": {
            "post": {"security": [{"Bearer": []}], "tags": ["invoices"], "summary": "Emitir nota de serviço", "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/api/audit/export": {
            "get": {"security": [{"Bearer": []}], "tags": ["audit"], "summary": "Exportar auditoria em CSV", "produces": ["text/csv"], "responses": {"200": {"description": "OK"}}}
        },
        "/api/store/login": {
            "post": {"tags": ["store"], "summary": "Login do portal da loja", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/store/cars/{id}/complete": {
            "post": {"security": [{"Bearer": []}], "tags": ["store"], "summary": "Concluir a etapa atual", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/api/store/problems": {
            "post": {"security": [{"Bearer": []}], "tags": ["store"], "summary": "Reportar problema geral", "responses": {"201": {"description": "Created"}}}
        }
    }
}`

// SwaggerInfo metadatos de la API.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Oficina Manager API",
	Description:      "Gestão de oficina de funilaria e pintura: carros, etapas, estoque, equipe e notas.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
