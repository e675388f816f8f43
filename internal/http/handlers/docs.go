package handlers

import "github.com/gin-gonic/gin"

const docsUIHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width,initial-scale=1" />
    <title>StudyCountDown API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
    <style>
      body { margin: 0; background: #f8fafc; }
      #swagger-ui { max-width: 1200px; margin: 0 auto; }
    </style>
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: "/docs/openapi.yaml",
        dom_id: "#swagger-ui",
        deepLinking: true,
        presets: [SwaggerUIBundle.presets.apis],
        layout: "BaseLayout"
      });
    </script>
  </body>
</html>`

const openAPISpec = `openapi: 3.0.3
info:
  title: StudyCountDown API
  description: Accounts, study plans and countdown targets for the StudyCountDown app.
  version: 1.0.0
servers:
  - url: /
paths:
  /api/register:
    post:
      summary: Create an account and receive a session token
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/RegisterRequest'
      responses:
        '201':
          description: Account created
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/AuthSession'
        '400':
          description: Validation failure or email already in use
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Error'
        '429':
          description: Too many attempts from this address
  /api/login:
    post:
      summary: Exchange credentials for a session token
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/LoginRequest'
      responses:
        '200':
          description: Logged in
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/AuthSession'
        '401':
          description: Unknown email or wrong password
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Error'
        '429':
          description: Too many attempts from this address
  /api/user:
    get:
      summary: Fetch the caller's own document
      security:
        - bearerAuth: []
      responses:
        '200':
          description: The full user document
          headers:
            ETag:
              schema:
                type: string
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/User'
        '304':
          description: Not modified
        '401':
          description: Missing, invalid or orphaned token
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Error'
  /api/user/{userId}:
    get:
      summary: Fetch any user document by id
      security:
        - bearerAuth: []
      parameters:
        - name: userId
          in: path
          required: true
          schema:
            type: string
            format: uuid
      responses:
        '200':
          description: The full user document
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/User'
        '404':
          description: Unknown or malformed id
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Error'
  /api/user/settings:
    put:
      summary: Update the caller's name or avatar
      security:
        - bearerAuth: []
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/SettingsUpdate'
      responses:
        '200':
          description: Settings updated
        '404':
          description: The account no longer exists
  /api/user/target-date:
    put:
      summary: Set the caller's countdown target
      security:
        - bearerAuth: []
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/TargetDateUpdate'
      responses:
        '200':
          description: Target date stored
        '400':
          description: Missing or malformed date
  /api/plans:
    post:
      summary: Append one study plan to the caller's list
      security:
        - bearerAuth: []
      requestBody:
        required: true
        content:
          application/json:
            schema:
              $ref: '#/components/schemas/PlanInput'
      responses:
        '201':
          description: Plan appended; the full list is returned
        '400':
          description: Validation failure or the document could not be saved
    put:
      summary: Replace the caller's entire plan list
      security:
        - bearerAuth: []
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: array
              items:
                $ref: '#/components/schemas/PlanInput'
      responses:
        '200':
          description: List replaced; an empty array clears it
        '400':
          description: Body was not an array, an element failed validation, or the save failed
  /api/health:
    get:
      summary: Liveness and database connection state
      responses:
        '200':
          description: Always served, connected or not
          content:
            application/json:
              schema:
                type: object
                properties:
                  status:
                    type: string
                  dbState:
                    type: integer
                    description: 0 disconnected, 1 connected, 2 connecting, 3 disconnecting
                  timestamp:
                    type: string
                    format: date-time
                  environment:
                    type: string
  /metrics:
    get:
      summary: Prometheus metrics
      responses:
        '200':
          description: Metrics in the Prometheus text format
components:
  securitySchemes:
    bearerAuth:
      type: http
      scheme: bearer
      bearerFormat: JWT
  schemas:
    StudyPlan:
      type: object
      properties:
        subject:
          type: string
        hours:
          type: number
        milestone:
          type: string
        completed:
          type: boolean
    User:
      type: object
      properties:
        id:
          type: string
          format: uuid
        name:
          type: string
        email:
          type: string
          format: email
        avatar:
          type: string
        studyPlans:
          type: array
          items:
            $ref: '#/components/schemas/StudyPlan'
        targetDate:
          type: string
          format: date-time
          nullable: true
        createdAt:
          type: string
          format: date-time
        updatedAt:
          type: string
          format: date-time
    UserSummary:
      type: object
      properties:
        id:
          type: string
          format: uuid
        name:
          type: string
        email:
          type: string
        avatar:
          type: string
    AuthSession:
      type: object
      properties:
        user:
          $ref: '#/components/schemas/UserSummary'
        token:
          type: string
    RegisterRequest:
      type: object
      required: [name, email, password]
      properties:
        name:
          type: string
        email:
          type: string
          format: email
        password:
          type: string
          minLength: 8
    LoginRequest:
      type: object
      required: [email, password]
      properties:
        email:
          type: string
          format: email
        password:
          type: string
    SettingsUpdate:
      type: object
      properties:
        name:
          type: string
        avatar:
          type: string
    TargetDateUpdate:
      type: object
      required: [targetDate]
      properties:
        targetDate:
          type: string
          format: date-time
    PlanInput:
      type: object
      required: [subject]
      properties:
        subject:
          type: string
        hours:
          type: number
          minimum: 0
        milestone:
          type: string
        completed:
          type: boolean
    Error:
      type: object
      properties:
        error:
          type: object
          properties:
            code:
              type: string
            message:
              type: string
            requestId:
              type: string
            details:
              type: object
`

func DocsUI(ctx *gin.Context) {
	ctx.Data(200, "text/html; charset=utf-8", []byte(docsUIHTML))
}

func DocsSpec(ctx *gin.Context) {
	ctx.Data(200, "application/yaml; charset=utf-8", []byte(openAPISpec))
}
